package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	RemoteSheets   = "sheets"
	RemotePostgres = "postgres"
	RemoteNone     = "none"
)

type Config struct {
	Listen    string           `yaml:"listen"`
	DataDir   string           `yaml:"data_dir"`
	Campaigns []CampaignSource `yaml:"campaigns"`
	Storage   StorageConfig    `yaml:"storage"`
	Sheets    SheetsConfig     `yaml:"sheets"`
	Postgres  PostgresConfig   `yaml:"postgres"`
	AMQP      AMQPConfig       `yaml:"amqp"`
	Session   SessionConfig    `yaml:"session"`
	Log       LogConfig        `yaml:"log"`
}

// CampaignSource pins a campaign to a CSV file. Empty column names fall back
// to header detection.
type CampaignSource struct {
	Name         string `yaml:"name"`
	File         string `yaml:"file"`
	IDColumn     string `yaml:"id_column"`
	NameColumn   string `yaml:"name_column"`
	BranchColumn string `yaml:"branch_column"`
}

type StorageConfig struct {
	Remote    string `yaml:"remote"`     // sheets, postgres or none
	LocalPath string `yaml:"local_path"` // SQLite file used when the remote is unavailable
}

type SheetsConfig struct {
	SpreadsheetURL  string         `yaml:"spreadsheet_url"` // full URL or bare spreadsheet ID
	Worksheet       string         `yaml:"worksheet"`
	CredentialsFile string         `yaml:"credentials_file"`
	ServiceAccount  ServiceAccount `yaml:"service_account"`
}

// ServiceAccount mirrors the fields of a Google service-account key file.
type ServiceAccount struct {
	Type         string `yaml:"type" json:"type"`
	ProjectID    string `yaml:"project_id" json:"project_id"`
	PrivateKeyID string `yaml:"private_key_id" json:"private_key_id,omitempty"`
	PrivateKey   string `yaml:"private_key" json:"private_key"`
	ClientEmail  string `yaml:"client_email" json:"client_email"`
	ClientID     string `yaml:"client_id" json:"client_id,omitempty"`
	TokenURI     string `yaml:"token_uri" json:"token_uri"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type AMQPConfig struct {
	URL   string `yaml:"url"`
	Queue string `yaml:"queue"`
}

type SessionConfig struct {
	Secret  string        `yaml:"secret"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Listen:  ":8080",
		DataDir: "data",
		Storage: StorageConfig{
			Remote:    RemoteSheets,
			LocalPath: "call_log.db",
		},
		Sheets: SheetsConfig{
			Worksheet: "call_log",
		},
		AMQP: AMQPConfig{
			Queue: "call_logged",
		},
		Session: SessionConfig{
			Timeout: 12 * time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads .env, then the YAML file at path (if it exists), then applies
// environment overrides. Missing files are not an error; unreadable or
// malformed ones are.
func Load(path string) (*Config, error) {
	// .env is optional, the process environment may already carry everything
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := Default()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(c)

	if c.Session.Secret == "" {
		c.Session.Secret = randomSecret()
	}

	switch c.Storage.Remote {
	case RemoteSheets, RemotePostgres, RemoteNone:
	default:
		return nil, fmt.Errorf("unknown storage.remote %q (want %s, %s or %s)",
			c.Storage.Remote, RemoteSheets, RemotePostgres, RemoteNone)
	}

	return c, nil
}

func applyEnv(c *Config) {
	setString(&c.Listen, "LISTEN")
	setString(&c.DataDir, "DATA_DIR")
	setString(&c.Storage.Remote, "STORAGE_REMOTE")
	setString(&c.Storage.LocalPath, "LOCAL_LOG_PATH")

	setString(&c.Sheets.SpreadsheetURL, "SHEET_URL")
	setString(&c.Sheets.Worksheet, "SHEET_WORKSHEET")
	setString(&c.Sheets.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	sa := &c.Sheets.ServiceAccount
	setString(&sa.Type, "GCP_TYPE")
	setString(&sa.ProjectID, "GCP_PROJECT_ID")
	setString(&sa.PrivateKeyID, "GCP_PRIVATE_KEY_ID")
	setString(&sa.PrivateKey, "GCP_PRIVATE_KEY")
	setString(&sa.ClientEmail, "GCP_CLIENT_EMAIL")
	setString(&sa.ClientID, "GCP_CLIENT_ID")
	setString(&sa.TokenURI, "GCP_TOKEN_URI")

	setString(&c.Postgres.DSN, "DATABASE_URL")
	if c.Postgres.DSN == "" && os.Getenv("DB_HOST") != "" {
		c.Postgres.DSN = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"), envOr("DB_PORT", "5432"), os.Getenv("DB_NAME"),
		)
	}

	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.AMQP.Queue, "AMQP_QUEUE")

	setString(&c.Session.Secret, "SESSION_SECRET")
	if v := os.Getenv("SESSION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.Timeout = d
		}
	}

	setString(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Development = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
