package repository

import (
    "context"
    "fmt"
    "time"

    "gorm.io/gorm"

    "github.com/unclebandit/outreach-tracker/internal/db"
    "github.com/unclebandit/outreach-tracker/internal/model"
)

// localCallLogRow is the SQLite shape of a call log entry. The autoincrement
// id carries insertion order.
type localCallLogRow struct {
    ID         uint      `gorm:"primaryKey"`
    Timestamp  time.Time `gorm:"not null"`
    Campaign   string    `gorm:"not null;index"`
    CustomerID string    `gorm:"not null"`
    Outcome    string    `gorm:"not null"`
    Note       string
}

func (localCallLogRow) TableName() string { return "call_log" }

// LocalBackend persists the call log to a SQLite file on local disk.
type LocalBackend struct {
    Path string
    DB   *gorm.DB

    openErr error
}

// NewLocalBackend opens the file at path. Opening never fails outright: if
// the file cannot be opened or migrated, the error is kept and every Append
// and ReadAll reports it.
func NewLocalBackend(path string) *LocalBackend {
    b := &LocalBackend{Path: path}

    gdb, err := db.OpenSQLite(path)
    if err != nil {
        b.openErr = err
        return b
    }
    if err := gdb.AutoMigrate(&localCallLogRow{}); err != nil {
        b.openErr = fmt.Errorf("migrate %s: %w", path, err)
        return b
    }
    b.DB = gdb
    return b
}

func (b *LocalBackend) Kind() BackendKind { return BackendLocal }

func (b *LocalBackend) Append(ctx context.Context, entry *model.CallLogEntry) error {
    if b.openErr != nil {
        return b.openErr
    }
    row := localCallLogRow{
        Timestamp:  entry.Timestamp.UTC(),
        Campaign:   entry.Campaign,
        CustomerID: entry.CustomerID,
        Outcome:    string(entry.Outcome),
        Note:       entry.Note,
    }
    return b.DB.WithContext(ctx).Create(&row).Error
}

func (b *LocalBackend) ReadAll(ctx context.Context) ([]model.CallLogEntry, error) {
    if b.openErr != nil {
        return nil, b.openErr
    }
    var rows []localCallLogRow
    if err := b.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
        return nil, err
    }

    entries := make([]model.CallLogEntry, 0, len(rows))
    for _, r := range rows {
        entries = append(entries, model.CallLogEntry{
            Timestamp:  r.Timestamp,
            Campaign:   r.Campaign,
            CustomerID: r.CustomerID,
            Outcome:    model.Outcome(r.Outcome),
            Note:       r.Note,
        })
    }
    return entries, nil
}

func (b *LocalBackend) Close() error {
    if b.DB == nil {
        return nil
    }
    sqlDB, err := b.DB.DB()
    if err != nil {
        return err
    }
    return sqlDB.Close()
}
