package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/model"
)

// Worker keeps a running per-campaign, per-outcome tally of call-logged events
type Worker struct {
	Events <-chan model.CallLoggedEvent
	Logger *zap.Logger

	mu    sync.Mutex
	tally map[string]map[model.Outcome]int
}

// Constructor
func NewWorker(events <-chan model.CallLoggedEvent, log *zap.Logger) *Worker {
	return &Worker{
		Events: events,
		Logger: log,
		tally:  map[string]map[model.Outcome]int{},
	}
}

// Start consumes events until the channel is closed
func (w *Worker) Start() {
	for ev := range w.Events {
		w.observe(ev)
	}
}

// Handle is a queue subscriber for in-process delivery.
func (w *Worker) Handle(payload any) error {
	switch ev := payload.(type) {
	case model.CallLoggedEvent:
		w.observe(ev)
	case *model.CallLoggedEvent:
		w.observe(*ev)
	default:
		return fmt.Errorf("unexpected call logged payload %T", payload)
	}
	return nil
}

func (w *Worker) observe(ev model.CallLoggedEvent) {
	count := w.record(ev.Entry)
	logger.OrNop(w.Logger).Info("📩 call logged",
		zap.String("backend", ev.Backend),
		zap.String("campaign", ev.Entry.Campaign),
		zap.String("customer_id", ev.Entry.CustomerID),
		zap.String("outcome", string(ev.Entry.Outcome)),
		zap.Int("campaign_outcome_total", count))
}

func (w *Worker) record(e model.CallLogEntry) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	byOutcome, ok := w.tally[e.Campaign]
	if !ok {
		byOutcome = map[model.Outcome]int{}
		w.tally[e.Campaign] = byOutcome
	}
	byOutcome[e.Outcome]++
	return byOutcome[e.Outcome]
}

// Tally returns a copy of the counts seen so far
func (w *Worker) Tally() map[string]map[model.Outcome]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]map[model.Outcome]int, len(w.tally))
	for c, byOutcome := range w.tally {
		cp := make(map[model.Outcome]int, len(byOutcome))
		for o, n := range byOutcome {
			cp[o] = n
		}
		out[c] = cp
	}
	return out
}
