package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
	"github.com/unclebandit/outreach-tracker/internal/model"
	"github.com/unclebandit/outreach-tracker/internal/service"
)

type staticTally map[string]map[model.Outcome]int

func (s staticTally) Tally() map[string]map[model.Outcome]int { return s }

func TestDashboardTotals(t *testing.T) {
	yesterday := fixedNow.Add(-24 * time.Hour)
	campaigns := newCampaignService(t,
		model.CallLogEntry{Timestamp: yesterday, Campaign: "Recovery", CustomerID: "CUST-001", Outcome: model.OutcomeNoAnswer},
		model.CallLogEntry{Timestamp: fixedNow.Add(-time.Hour), Campaign: "Recovery", CustomerID: "CUST-001", Outcome: model.OutcomeFollowUp, Note: "call back friday"},
		model.CallLogEntry{Timestamp: fixedNow, Campaign: "Parts", CustomerID: "P-1", Outcome: model.OutcomeContacted, Note: "  "},
		model.CallLogEntry{Campaign: "Parts", CustomerID: "P-1", Outcome: model.OutcomeNotInterested},
	)
	svc := &service.DashboardService{
		Campaigns: campaigns,
		Now:       func() time.Time { return fixedNow },
	}

	d, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, d.TotalCalls)
	assert.Equal(t, 2, d.CalledToday, "yesterday and unreadable timestamps are not today")
	assert.Equal(t, 1, d.FollowUps)
	assert.Equal(t, 1, d.NotesLogged)
	assert.Equal(t, 1, d.ByOutcome[model.OutcomeNoAnswer])
	assert.Equal(t, 1, d.ByOutcome[model.OutcomeFollowUp])
	assert.Equal(t, 1, d.ByOutcome[model.OutcomeContacted])
	assert.Len(t, d.Campaigns, 2)
	assert.Nil(t, d.LiveTally)

	require.Len(t, d.Recent, 4)
	assert.Equal(t, fixedNow, d.Recent[0].Timestamp)
	assert.Equal(t, model.OutcomeFollowUp, d.Recent[1].Outcome)
	assert.True(t, d.Recent[3].Timestamp.IsZero())
}

func TestDashboardRecentLimitAndTally(t *testing.T) {
	var entries []model.CallLogEntry
	for i := 0; i < 60; i++ {
		entries = append(entries, model.CallLogEntry{
			Timestamp:  fixedNow.Add(time.Duration(i) * time.Minute),
			Campaign:   "Recovery",
			CustomerID: fmt.Sprintf("CUST-%03d", i),
			Outcome:    model.OutcomeContacted,
		})
	}
	svc := &service.DashboardService{
		Campaigns: newCampaignService(t, entries...),
		Tally:     staticTally{"Recovery": {model.OutcomeContacted: 3}},
		Now:       func() time.Time { return fixedNow },
	}

	d, err := svc.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Recent, 50)
	assert.Equal(t, "CUST-059", d.Recent[0].CustomerID)
	assert.Equal(t, 3, d.LiveTally["Recovery"][model.OutcomeContacted])

	svc.RecentLimit = 5
	d, err = svc.Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Recent, 5)
}

func TestGetCustomerHistory(t *testing.T) {
	svc := newCampaignService(t,
		model.CallLogEntry{Campaign: "Recovery", CustomerID: "CUST-002", Outcome: model.OutcomeNoAnswer},
		model.CallLogEntry{Campaign: "Parts", CustomerID: "CUST-002", Outcome: model.OutcomeContacted},
		model.CallLogEntry{Campaign: "recovery", CustomerID: "CUST-002", Outcome: model.OutcomeFollowUp},
	)

	h, err := svc.GetCustomer(context.Background(), "RECOVERY", "CUST-002")
	require.NoError(t, err)
	assert.Equal(t, "Recovery", h.Campaign)
	assert.Equal(t, "Globex Paving", h.Name)
	require.Len(t, h.Entries, 2)
	assert.True(t, h.Called)
	assert.Equal(t, model.OutcomeFollowUp, h.LastEntry.Outcome)

	h, err = svc.GetCustomer(context.Background(), "Recovery", "CUST-003")
	require.NoError(t, err)
	assert.False(t, h.Called)
	assert.Empty(t, h.Entries)

	_, err = svc.GetCustomer(context.Background(), "Recovery", "CUST-404")
	var notFound *appErrors.CustomerNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
