package resolver

import "errors"

type Kind uint8

const (
	NoOutput Kind = iota
	Matched
	Fallback
)

var kindNames = map[Kind]string{
	NoOutput: "no_output",
	Matched:  "matched",
	Fallback: "fallback",
}

func (k Kind) String() string {
	return kindNames[k]
}

var (
	ErrCorpusUnavailable = errors.New("corpus unavailable")
	ErrNoCandidates      = errors.New("no candidates")
	ErrBelowThreshold    = errors.New("best match below threshold")
	ErrDanglingReference = errors.New("matched example has no intent")
)

// Outcome is the single decision the caller formats a reply from. Reason is
// nil for a match and explains why the fallback path was taken otherwise.
type Outcome struct {
	Kind      Kind    `json:"kind"`
	Text      string  `json:"text,omitempty"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Sample    string  `json:"sample,omitempty"`
	IntentID  string  `json:"intent_id,omitempty"`
	Reason    error   `json:"-"`
}

func (o Outcome) HasOutput() bool {
	return o.Kind != NoOutput
}

// Degraded reports whether storage failed while resolving, as opposed to an
// ordinary miss.
func (o Outcome) Degraded() bool {
	return errors.Is(o.Reason, ErrCorpusUnavailable)
}

func (o Outcome) ReasonText() string {
	if o.Reason == nil {
		return ""
	}
	return o.Reason.Error()
}
