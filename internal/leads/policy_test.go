package leads

import "testing"

func strp(s string) *string { return &s }

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name       string
		digits     *string
		callStatus *string
		want       Status
	}{
		{"digit one books", strp("1"), strp("completed"), StatusBooked},
		{"digit two asks for callback", strp("2"), nil, StatusCallback},
		{"digit one beats failed call", strp("1"), strp("failed"), StatusBooked},
		{"digit two beats busy call", strp("2"), strp("busy"), StatusCallback},
		{"no answer is pending", nil, strp("no-answer"), StatusPending},
		{"busy is pending", nil, strp("busy"), StatusPending},
		{"failed is pending", nil, strp("failed"), StatusPending},
		{"other digit with failed call is pending", strp("9"), strp("failed"), StatusPending},
		{"empty digit with no-answer is pending", strp(""), strp("no-answer"), StatusPending},
		{"answered without keypress is contacted", nil, strp("completed"), StatusContacted},
		{"other digit on answered call is contacted", strp("3"), strp("completed"), StatusContacted},
		{"no fields is contacted", nil, nil, StatusContacted},
		{"digits are matched exactly", strp(" 1"), nil, StatusContacted},
		{"call status is matched exactly", nil, strp("NO-ANSWER"), StatusContacted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.digits, tc.callStatus); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusContacted, StatusBooked, StatusCallback} {
		if !s.Valid() {
			t.Fatalf("expected %q valid", s)
		}
	}
	if Status("lost").Valid() || Status("").Valid() {
		t.Fatalf("expected unknown statuses invalid")
	}
}
