package repository

import (
    "context"
    "fmt"

    "github.com/unclebandit/outreach-tracker/internal/config"
    appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
)

// RemoteFromConfig returns the opener for the configured remote, or nil when
// storage.remote is "none".
func RemoteFromConfig(cfg *config.Config) RemoteOpener {
    switch cfg.Storage.Remote {
    case config.RemoteSheets:
        return func(ctx context.Context) (CallLogBackend, error) {
            b, err := OpenSheetsBackend(ctx, cfg.Sheets)
            if err != nil {
                return nil, appErrors.NewRemoteUnavailable(string(BackendSheets), err)
            }
            return b, nil
        }
    case config.RemotePostgres:
        return func(ctx context.Context) (CallLogBackend, error) {
            b, err := OpenPostgresBackend(ctx, cfg.Postgres.DSN)
            if err != nil {
                return nil, appErrors.NewRemoteUnavailable(string(BackendPostgres), err)
            }
            return b, nil
        }
    case config.RemoteNone:
        return nil
    default:
        return func(context.Context) (CallLogBackend, error) {
            return nil, fmt.Errorf("unknown remote backend %q", cfg.Storage.Remote)
        }
    }
}
