package repository

import (
    "context"

    "go.uber.org/zap"

    "github.com/unclebandit/outreach-tracker/internal/logger"
    "github.com/unclebandit/outreach-tracker/internal/model"
)

type BackendKind string

const (
    BackendSheets   BackendKind = "sheets"
    BackendPostgres BackendKind = "postgres"
    BackendLocal    BackendKind = "local"
)

// CallLogBackend is the append/read_all capability shared by every store.
type CallLogBackend interface {
    Kind() BackendKind
    Append(ctx context.Context, entry *model.CallLogEntry) error
    ReadAll(ctx context.Context) ([]model.CallLogEntry, error)
}

// RemoteOpener connects to a remote backend. Any error means "use local".
type RemoteOpener func(ctx context.Context) (CallLogBackend, error)

// BackendStatus is what the landing page and /status report.
type BackendStatus struct {
    Backend BackendKind `json:"backend"`
    Remote  bool        `json:"remote"`
    Reason  string      `json:"reason,omitempty"`
}

func (s BackendStatus) Label() string {
    switch s.Backend {
    case BackendSheets:
        return "Sheets Connected"
    case BackendPostgres:
        return "Postgres Connected"
    default:
        return "Local Mode"
    }
}

// CallLogStore holds the backend chosen at startup. The choice never changes
// for the life of the process.
type CallLogStore struct {
    backend CallLogBackend
    status  BackendStatus
}

// NewCallLogStore wraps an already chosen backend.
func NewCallLogStore(b CallLogBackend) *CallLogStore {
    return &CallLogStore{
        backend: b,
        status:  BackendStatus{Backend: b.Kind(), Remote: b.Kind() != BackendLocal},
    }
}

// SelectBackend tries the remote opener once and degrades to the local file
// on any failure, including a nil opener. It never returns an error.
func SelectBackend(ctx context.Context, remote RemoteOpener, localPath string, log *zap.Logger) *CallLogStore {
    log = logger.OrNop(log)

    if remote != nil {
        b, err := openRemote(ctx, remote)
        if err == nil {
            log.Info("✅ call log using remote backend", zap.String("backend", string(b.Kind())))
            return NewCallLogStore(b)
        }
        log.Warn("⚠️ remote call log unavailable, falling back to local file",
            zap.String("path", localPath), zap.Error(err))
        store := NewCallLogStore(NewLocalBackend(localPath))
        store.status.Reason = err.Error()
        return store
    }

    log.Info("call log using local file, no remote configured", zap.String("path", localPath))
    store := NewCallLogStore(NewLocalBackend(localPath))
    store.status.Reason = "no remote backend configured"
    return store
}

// openRemote converts a panicking client library into an ordinary failure.
func openRemote(ctx context.Context, remote RemoteOpener) (b CallLogBackend, err error) {
    defer func() {
        if r := recover(); r != nil {
            b, err = nil, &panicError{value: r}
        }
    }()
    b, err = remote(ctx)
    if err == nil && b == nil {
        err = errNilBackend
    }
    return b, err
}

func (s *CallLogStore) Backend() CallLogBackend { return s.backend }

func (s *CallLogStore) Status() BackendStatus { return s.status }

func (s *CallLogStore) Append(ctx context.Context, entry *model.CallLogEntry) error {
    return s.backend.Append(ctx, entry)
}

func (s *CallLogStore) ReadAll(ctx context.Context) ([]model.CallLogEntry, error) {
    return s.backend.ReadAll(ctx)
}

// Close releases the backend's resources when it holds any.
func (s *CallLogStore) Close() error {
    if c, ok := s.backend.(interface{ Close() error }); ok {
        return c.Close()
    }
    return nil
}

func (s *CallLogStore) Kind() BackendKind { return s.backend.Kind() }

var _ CallLogBackend = (*CallLogStore)(nil)
