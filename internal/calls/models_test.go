package calls

import "testing"

func TestStatus_Unreached(t *testing.T) {
	unreached := []Status{StatusNoAnswer, StatusBusy, StatusFailed}
	for _, s := range unreached {
		if !s.Unreached() {
			t.Fatalf("expected %q to be unreached", s)
		}
	}
	reached := []Status{StatusQueued, StatusRinging, StatusInProgress, StatusCompleted, StatusCanceled, Status(""), Status("no_answer")}
	for _, s := range reached {
		if s.Unreached() {
			t.Fatalf("expected %q not to be unreached", s)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	if StatusRinging.Terminal() || StatusInProgress.Terminal() {
		t.Fatalf("expected in-flight statuses to be non-terminal")
	}
	if !StatusCompleted.Terminal() || !StatusCanceled.Terminal() {
		t.Fatalf("expected completed and canceled to be terminal")
	}
}
