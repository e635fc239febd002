package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-tracker/internal/model"
)

func TestPostgresBackendAppend(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	b := &PostgresBackend{DB: conn}
	e := entry("CUST-001", model.OutcomeContacted, "left voicemail")

	mock.ExpectQuery(`INSERT INTO call_log`).
		WithArgs(e.Timestamp.UTC(), "Recovery", "CUST-001", "contacted", "left voicemail").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, b.Append(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackendAppendError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery(`INSERT INTO call_log`).WillReturnError(errors.New("connection reset"))

	b := &PostgresBackend{DB: conn}
	assert.ErrorContains(t, b.Append(context.Background(), entry("CUST-001", model.OutcomeContacted, "")), "connection reset")
}

func TestPostgresBackendReadAll(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	ts := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT timestamp, campaign, customer_id, outcome, note FROM call_log ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"timestamp", "campaign", "customer_id", "outcome", "note"}).
			AddRow(ts, "Recovery", "CUST-001", "contacted", "left voicemail").
			AddRow(ts.Add(time.Minute), "Parts", "CUST-009", "no answer", ""))

	b := &PostgresBackend{DB: conn}
	got, err := b.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.OutcomeContacted, got[0].Outcome)
	assert.Equal(t, "CUST-009", got[1].CustomerID)
	assert.Equal(t, ts.Add(time.Minute), got[1].Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackendEnsureSchema(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS call_log`).WillReturnResult(sqlmock.NewResult(0, 0))

	b := &PostgresBackend{DB: conn}
	require.NoError(t, b.EnsureSchema(context.Background()))
	assert.Equal(t, BackendPostgres, b.Kind())
	assert.NoError(t, mock.ExpectationsWereMet())
}
