package telephony

import (
	"bytes"
	"encoding/xml"
	"strings"

	"lead-call-relay/internal/relay"
)

// ExoML is Exotel's TwiML-compatible call markup. Only the verbs the relay
// needs are modelled here; no vendor SDK is involved.

const (
	gatherNumDigits = 1
	gatherTimeout   = 10
)

type exomlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any    `xml:",any"`
}

type exomlPlay struct {
	XMLName xml.Name `xml:"Play"`
	URL     string   `xml:",chardata"`
}

type exomlSay struct {
	XMLName  xml.Name `xml:"Say"`
	Language string   `xml:"language,attr,omitempty"`
	Text     string   `xml:",chardata"`
}

type exomlGather struct {
	XMLName   xml.Name `xml:"Gather"`
	NumDigits int      `xml:"numDigits,attr"`
	Action    string   `xml:"action,attr"`
	Timeout   int      `xml:"timeout,attr"`
}

type exomlHangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

// RenderScript is a pure function of the script: Play when audio is
// available, Say otherwise, then a single-digit Gather posting to the
// outcome webhook.
func RenderScript(s relay.Script) (string, error) {
	var r exomlResponse
	if strings.TrimSpace(s.AudioURL) != "" {
		r.Verbs = append(r.Verbs, exomlPlay{URL: s.AudioURL})
	} else {
		r.Verbs = append(r.Verbs, exomlSay{Language: s.Language, Text: s.Text})
	}
	r.Verbs = append(r.Verbs, exomlGather{
		NumDigits: gatherNumDigits,
		Action:    s.GatherAction,
		Timeout:   gatherTimeout,
	})
	return encode(r)
}

// RenderHangup ends the call.
func RenderHangup() (string, error) {
	return encode(exomlResponse{Verbs: []any{exomlHangup{}}})
}

func encode(r exomlResponse) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// hangupFallback is served when rendering fails; the live call must always
// receive well-formed markup.
const hangupFallback = xml.Header + "<Response><Hangup/></Response>"
