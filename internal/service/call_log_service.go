// internal/service/call_log_service.go
package service

import (
    "context"
    "fmt"
    "strings"
    "time"

    "go.uber.org/zap"

    appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
    "github.com/unclebandit/outreach-tracker/internal/logger"
    "github.com/unclebandit/outreach-tracker/internal/model"
    "github.com/unclebandit/outreach-tracker/internal/queue"
    "github.com/unclebandit/outreach-tracker/internal/repository"
)

// CallLogService validates call submissions and appends them to the backend
// selected at startup.
type CallLogService struct {
    Backend   repository.CallLogBackend
    Publisher queue.Publisher // optional
    Topic     string          // defaults to queue.TopicCallLogged
    Logger    *zap.Logger
    Now       func() time.Time
}

// RecordCall validates, timestamps and appends one entry. Invalid input is
// rejected with a ValidationError before the backend is touched; a failed
// append comes back as a WriteError and is not retried.
func (s *CallLogService) RecordCall(ctx context.Context, campaign, customerID, outcome, note string) (*model.CallLogEntry, error) {
    log := logger.OrNop(s.Logger)

    campaign = strings.TrimSpace(campaign)
    customerID = strings.TrimSpace(customerID)
    if campaign == "" {
        return nil, appErrors.NewValidationError("campaign", "must not be empty")
    }
    if customerID == "" {
        return nil, appErrors.NewValidationError("customer_id", "must not be empty")
    }
    o, ok := model.ParseOutcome(outcome)
    if !ok {
        return nil, appErrors.NewValidationError("outcome", fmt.Sprintf("%q is not one of %s", outcome, outcomeList()))
    }

    entry := &model.CallLogEntry{
        Timestamp:  s.now(),
        Campaign:   campaign,
        CustomerID: customerID,
        Outcome:    o,
        Note:       note,
    }

    kind := string(s.Backend.Kind())
    if err := s.Backend.Append(ctx, entry); err != nil {
        log.Error("❌ failed to write call log",
            zap.String("backend", kind),
            zap.String("campaign", campaign),
            zap.String("customer_id", customerID),
            zap.Error(err))
        return nil, appErrors.NewWriteError(kind, err)
    }

    log.Info("call logged",
        zap.String("backend", kind),
        zap.String("campaign", campaign),
        zap.String("customer_id", customerID),
        zap.String("outcome", string(o)))

    s.publish(log, kind, entry)
    return entry, nil
}

// publish never affects the result of RecordCall; the entry is already durable.
func (s *CallLogService) publish(log *zap.Logger, kind string, entry *model.CallLogEntry) {
    if s.Publisher == nil {
        return
    }
    topic := s.Topic
    if topic == "" {
        topic = queue.TopicCallLogged
    }
    ev := model.CallLoggedEvent{Backend: kind, Entry: *entry}
    if err := s.Publisher.Publish(topic, ev); err != nil {
        log.Warn("⚠️ failed to publish call logged event", zap.String("topic", topic), zap.Error(err))
    }
}

// ListCalls returns entries in insertion order, optionally for one campaign.
func (s *CallLogService) ListCalls(ctx context.Context, campaign string) ([]model.CallLogEntry, error) {
    entries, err := s.Backend.ReadAll(ctx)
    if err != nil {
        return nil, err
    }
    campaign = strings.TrimSpace(campaign)
    if campaign == "" {
        return entries, nil
    }
    filtered := []model.CallLogEntry{}
    for _, e := range entries {
        if strings.EqualFold(e.Campaign, campaign) {
            filtered = append(filtered, e)
        }
    }
    return filtered, nil
}

func (s *CallLogService) now() time.Time {
    if s.Now != nil {
        return s.Now()
    }
    return time.Now()
}

func outcomeList() string {
    names := make([]string, len(model.Outcomes))
    for i, o := range model.Outcomes {
        names[i] = fmt.Sprintf("%q", string(o))
    }
    return strings.Join(names, ", ")
}
