// internal/service/dashboard_service.go
package service

import (
    "context"
    "sort"
    "strings"
    "time"

    "github.com/unclebandit/outreach-tracker/internal/model"
)

const defaultRecentLimit = 50

// TallySource is satisfied by Worker when it runs inside the web process.
type TallySource interface {
    Tally() map[string]map[model.Outcome]int
}

// Dashboard is the leadership view across every campaign.
type Dashboard struct {
    TotalCalls  int                              `json:"total_calls"`
    CalledToday int                              `json:"called_today"`
    FollowUps   int                              `json:"follow_ups"`
    NotesLogged int                              `json:"notes_logged"`
    ByOutcome   map[model.Outcome]int            `json:"by_outcome"`
    Campaigns   []CampaignDetails                `json:"campaigns"`
    Recent      []model.CallLogEntry             `json:"recent"`
    LiveTally   map[string]map[model.Outcome]int `json:"live_tally,omitempty"`
}

type DashboardService struct {
    Campaigns   *CampaignService
    Tally       TallySource // nil when events go to an external worker
    RecentLimit int
    Now         func() time.Time
}

// Build reads the whole call log once and summarizes it.
func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
    entries, err := s.Campaigns.CallLog.ReadAll(ctx)
    if err != nil {
        return nil, err
    }

    now := time.Now()
    if s.Now != nil {
        now = s.Now()
    }
    today := now.Format("2006-01-02")

    d := &Dashboard{ByOutcome: map[model.Outcome]int{}}
    for _, o := range model.Outcomes {
        d.ByOutcome[o] = 0
    }
    for _, e := range entries {
        d.TotalCalls++
        d.ByOutcome[e.Outcome]++
        if e.Outcome == model.OutcomeFollowUp {
            d.FollowUps++
        }
        if strings.TrimSpace(e.Note) != "" {
            d.NotesLogged++
        }
        if !e.Timestamp.IsZero() && e.Timestamp.In(now.Location()).Format("2006-01-02") == today {
            d.CalledToday++
        }
    }

    d.Campaigns = make([]CampaignDetails, 0)
    for _, c := range s.Campaigns.CampaignRepo.ListCampaigns() {
        cd, err := s.Campaigns.details(c, entries)
        if err != nil {
            return nil, err
        }
        d.Campaigns = append(d.Campaigns, *cd)
    }

    limit := s.RecentLimit
    if limit <= 0 {
        limit = defaultRecentLimit
    }
    recent := make([]model.CallLogEntry, len(entries))
    copy(recent, entries)
    // newest first; equal timestamps keep reverse insertion order
    for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
        recent[i], recent[j] = recent[j], recent[i]
    }
    sort.SliceStable(recent, func(i, j int) bool {
        return recent[i].Timestamp.After(recent[j].Timestamp)
    })
    if len(recent) > limit {
        recent = recent[:limit]
    }
    d.Recent = recent

    if s.Tally != nil {
        d.LiveTally = s.Tally.Tally()
    }
    return d, nil
}
