package domain

import "encoding/json"

// ─── Onboarding Quiz Types ──────────────────────────────────────────────────

// Stream is the learner's post-school pathway, a closed enumeration.
// Unrecognized inputs resolve to StreamUnsure rather than erroring.
type Stream string

const (
	StreamTrade       Stream = "trade"
	StreamUni         Stream = "uni"
	StreamEarlyLeaver Stream = "early-leaver"
	StreamMilitary    Stream = "military"
	StreamUnsure      Stream = "unsure"
)

// QuizAnswers maps a question key to a single answer or a multi-select list.
// Exactly one of Value/Values is meaningful per entry.
type QuizAnswers map[string]Answer

// Answer holds either a single string answer or a list of them.
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// IsList reports whether this answer is a multi-select.
func (a Answer) IsList() bool { return a.Values != nil }

// MarshalJSON writes the answer in wire form: a bare string for single
// answers, an array for multi-selects.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsList() {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Value, a.Values = s, nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	a.Value, a.Values = "", list
	return nil
}

// ProfileTag is the persona label shown on a learner's profile.
type ProfileTag struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}
