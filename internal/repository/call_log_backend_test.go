package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-tracker/internal/config"
	"github.com/unclebandit/outreach-tracker/internal/model"
)

// MockRemoteBackend keeps entries in memory and reports itself as remote.
type MockRemoteBackend struct {
	entries []model.CallLogEntry
}

func (m *MockRemoteBackend) Kind() BackendKind { return BackendSheets }

func (m *MockRemoteBackend) Append(_ context.Context, e *model.CallLogEntry) error {
	m.entries = append(m.entries, *e)
	return nil
}

func (m *MockRemoteBackend) ReadAll(context.Context) ([]model.CallLogEntry, error) {
	return m.entries, nil
}

func entry(customer string, outcome model.Outcome, note string) *model.CallLogEntry {
	return &model.CallLogEntry{
		Timestamp:  time.Now(),
		Campaign:   "Recovery",
		CustomerID: customer,
		Outcome:    outcome,
		Note:       note,
	}
}

func TestSelectBackendUsesRemoteWhenItOpens(t *testing.T) {
	remote := &MockRemoteBackend{}
	localPath := filepath.Join(t.TempDir(), "call_log.db")

	store := SelectBackend(context.Background(), func(context.Context) (CallLogBackend, error) {
		return remote, nil
	}, localPath, nil)

	assert.Equal(t, BackendSheets, store.Kind())
	assert.True(t, store.Status().Remote)
	assert.Equal(t, "Sheets Connected", store.Status().Label())

	require.NoError(t, store.Append(context.Background(), entry("CUST-001", model.OutcomeContacted, "")))
	assert.Len(t, remote.entries, 1)

	_, err := os.Stat(localPath)
	assert.True(t, os.IsNotExist(err), "local file must not be created when the remote is active")
}

func TestSelectBackendFallsBackOnError(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "call_log.db")

	store := SelectBackend(context.Background(), func(context.Context) (CallLogBackend, error) {
		return nil, errors.New("permission denied")
	}, localPath, nil)
	defer store.Close()

	assert.Equal(t, BackendLocal, store.Kind())
	assert.False(t, store.Status().Remote)
	assert.Equal(t, "Local Mode", store.Status().Label())
	assert.Contains(t, store.Status().Reason, "permission denied")
}

func TestSelectBackendFallsBackOnPanicAndNil(t *testing.T) {
	dir := t.TempDir()

	store := SelectBackend(context.Background(), func(context.Context) (CallLogBackend, error) {
		panic("boom")
	}, filepath.Join(dir, "a.db"), nil)
	assert.Equal(t, BackendLocal, store.Kind())
	assert.Contains(t, store.Status().Reason, "boom")
	store.Close()

	store = SelectBackend(context.Background(), func(context.Context) (CallLogBackend, error) {
		return nil, nil
	}, filepath.Join(dir, "b.db"), nil)
	assert.Equal(t, BackendLocal, store.Kind())
	store.Close()

	store = SelectBackend(context.Background(), nil, filepath.Join(dir, "c.db"), nil)
	assert.Equal(t, BackendLocal, store.Kind())
	assert.Equal(t, "no remote backend configured", store.Status().Reason)
	store.Close()
}

func TestSelectBackendWithMissingSheetsCredentials(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.LocalPath = filepath.Join(t.TempDir(), "call_log.db")
	cfg.Sheets.SpreadsheetURL = "https://docs.google.com/spreadsheets/d/abc123/edit"

	store := SelectBackend(context.Background(), RemoteFromConfig(cfg), cfg.Storage.LocalPath, nil)
	defer store.Close()

	assert.Equal(t, BackendLocal, store.Kind())
	assert.Contains(t, store.Status().Reason, "missing service account fields")
}

func TestSelectBackendWithInvalidPostgresDSN(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Remote = config.RemotePostgres
	cfg.Storage.LocalPath = filepath.Join(t.TempDir(), "call_log.db")

	store := SelectBackend(context.Background(), RemoteFromConfig(cfg), cfg.Storage.LocalPath, nil)
	defer store.Close()

	assert.Equal(t, BackendLocal, store.Kind())
	assert.Contains(t, store.Status().Reason, "dsn is empty")
}

func TestRemoteFromConfigNone(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Remote = config.RemoteNone
	assert.Nil(t, RemoteFromConfig(cfg))
}
