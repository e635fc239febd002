// internal/model/call_log.go
package model

import (
	"strings"
	"time"
)

type Outcome string

const (
	OutcomeContacted     Outcome = "contacted"
	OutcomeNoAnswer      Outcome = "no answer"
	OutcomeNotInterested Outcome = "not interested"
	OutcomeFollowUp      Outcome = "follow up"
)

// Outcomes lists the recognized outcomes in display order.
var Outcomes = []Outcome{OutcomeContacted, OutcomeNoAnswer, OutcomeNotInterested, OutcomeFollowUp}

// ParseOutcome normalizes user input ("No_Answer", " follow-up ") to a known outcome.
func ParseOutcome(s string) (Outcome, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	for _, o := range Outcomes {
		if string(o) == norm {
			return o, true
		}
	}
	return "", false
}

// CallLogHeader is the column order used by every backend.
var CallLogHeader = []string{"timestamp", "campaign", "customer_id", "outcome", "note"}

// CallLogEntry is one append-only record of a contact attempt.
type CallLogEntry struct {
    Timestamp  time.Time `json:"timestamp"`
    Campaign   string    `json:"campaign"`
    CustomerID string    `json:"customer_id"`
    Outcome    Outcome   `json:"outcome"`
    Note       string    `json:"note"`
}

// CallLoggedEvent is published after an entry has been durably appended.
type CallLoggedEvent struct {
    Backend string       `json:"backend"`
    Entry   CallLogEntry `json:"entry"`
}
