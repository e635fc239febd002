package repository

import (
    "context"
    "database/sql"

    "github.com/unclebandit/outreach-tracker/internal/db"
    "github.com/unclebandit/outreach-tracker/internal/model"
)

// PostgresSchema creates the call_log table. It is safe to run repeatedly.
const PostgresSchema = `
    CREATE TABLE IF NOT EXISTS call_log (
        id          BIGSERIAL PRIMARY KEY,
        timestamp   TIMESTAMPTZ NOT NULL,
        campaign    TEXT NOT NULL,
        customer_id TEXT NOT NULL,
        outcome     TEXT NOT NULL,
        note        TEXT NOT NULL DEFAULT ''
    )
`

type PostgresBackend struct {
    DB *sql.DB
}

// OpenPostgresBackend connects, pings and ensures the call_log table exists.
func OpenPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
    conn, err := db.OpenPostgres(ctx, dsn)
    if err != nil {
        return nil, err
    }
    b := &PostgresBackend{DB: conn}
    if err := b.EnsureSchema(ctx); err != nil {
        conn.Close()
        return nil, err
    }
    return b, nil
}

func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
    _, err := b.DB.ExecContext(ctx, PostgresSchema)
    return err
}

func (b *PostgresBackend) Kind() BackendKind { return BackendPostgres }

func (b *PostgresBackend) Append(ctx context.Context, entry *model.CallLogEntry) error {
    query := `
        INSERT INTO call_log (timestamp, campaign, customer_id, outcome, note)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
    var id int64
    return b.DB.QueryRowContext(ctx, query,
        entry.Timestamp.UTC(), entry.Campaign, entry.CustomerID, string(entry.Outcome), entry.Note,
    ).Scan(&id)
}

func (b *PostgresBackend) ReadAll(ctx context.Context) ([]model.CallLogEntry, error) {
    query := `SELECT timestamp, campaign, customer_id, outcome, note FROM call_log ORDER BY id ASC`
    rows, err := b.DB.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    entries := []model.CallLogEntry{}
    for rows.Next() {
        var e model.CallLogEntry
        var outcome string
        if err := rows.Scan(&e.Timestamp, &e.Campaign, &e.CustomerID, &outcome, &e.Note); err != nil {
            return nil, err
        }
        e.Outcome = model.Outcome(outcome)
        entries = append(entries, e)
    }
    return entries, rows.Err()
}

func (b *PostgresBackend) Close() error {
    return b.DB.Close()
}
