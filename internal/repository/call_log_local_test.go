package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-tracker/internal/model"
)

func TestLocalBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewLocalBackend(filepath.Join(t.TempDir(), "nested", "call_log.db"))
	defer b.Close()

	first := entry("CUST-001", model.OutcomeContacted, "left voicemail")
	second := entry("CUST-001", model.OutcomeFollowUp, "call back friday")
	require.NoError(t, b.Append(ctx, first))
	require.NoError(t, b.Append(ctx, second))

	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, want := range []*model.CallLogEntry{first, second} {
		assert.Equal(t, want.Campaign, got[i].Campaign)
		assert.Equal(t, want.CustomerID, got[i].CustomerID)
		assert.Equal(t, want.Outcome, got[i].Outcome)
		assert.Equal(t, want.Note, got[i].Note)
		assert.WithinDuration(t, want.Timestamp, got[i].Timestamp, time.Second)
	}
}

func TestLocalBackendSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "call_log.db")

	b := NewLocalBackend(path)
	require.NoError(t, b.Append(ctx, entry("CUST-002", model.OutcomeNoAnswer, "")))
	require.NoError(t, b.Close())

	b = NewLocalBackend(path)
	defer b.Close()
	got, err := b.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CUST-002", got[0].CustomerID)
}

func TestLocalBackendReportsOpenFailureOnWrite(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	b := NewLocalBackend(filepath.Join(blocker, "call_log.db"))
	assert.Equal(t, BackendLocal, b.Kind())

	assert.Error(t, b.Append(context.Background(), entry("CUST-003", model.OutcomeContacted, "")))
	_, err := b.ReadAll(context.Background())
	assert.Error(t, err)
	assert.NoError(t, b.Close())
}
