// internal/db/db.go
package db

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "path/filepath"

    _ "github.com/lib/pq"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"
)

// OpenPostgres opens and pings a Postgres pool. Unlike a fatal init, the
// error is returned so the caller can fall back to local storage.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
    if dsn == "" {
        return nil, fmt.Errorf("postgres dsn is empty")
    }

    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("open postgres: %w", err)
    }

    if err := conn.PingContext(ctx); err != nil {
        conn.Close()
        return nil, fmt.Errorf("ping postgres: %w", err)
    }

    return conn, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(path string) (*gorm.DB, error) {
    if dir := filepath.Dir(path); dir != "." && dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return nil, fmt.Errorf("create %s: %w", dir, err)
        }
    }

    gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
        Logger: gormlogger.Default.LogMode(gormlogger.Silent),
    })
    if err != nil {
        return nil, fmt.Errorf("open sqlite %s: %w", path, err)
    }
    return gdb, nil
}
