package repository

import (
    "context"
    "encoding/json"
    "fmt"
    "os"
    "regexp"
    "strings"
    "time"

    "golang.org/x/oauth2/google"
    "google.golang.org/api/option"
    "google.golang.org/api/sheets/v4"

    "github.com/unclebandit/outreach-tracker/internal/config"
    "github.com/unclebandit/outreach-tracker/internal/model"
)

const worksheetRows = 5000

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID accepts a full Google Sheets URL or a bare ID.
func SpreadsheetID(urlOrID string) (string, error) {
    s := strings.TrimSpace(urlOrID)
    if s == "" {
        return "", fmt.Errorf("spreadsheet url is empty")
    }
    if m := spreadsheetIDPattern.FindStringSubmatch(s); m != nil {
        return m[1], nil
    }
    if strings.ContainsAny(s, "/?#:") {
        return "", fmt.Errorf("cannot find a spreadsheet id in %q", s)
    }
    return s, nil
}

// ServiceAccountJSON renders the configured credentials as a key file. A
// credentials file, when set, wins over individual fields.
func ServiceAccountJSON(cfg config.SheetsConfig) ([]byte, error) {
    if cfg.CredentialsFile != "" {
        data, err := os.ReadFile(cfg.CredentialsFile)
        if err != nil {
            return nil, fmt.Errorf("read credentials file: %w", err)
        }
        return data, nil
    }

    sa := cfg.ServiceAccount
    var missing []string
    for _, f := range []struct{ name, value string }{
        {"type", sa.Type},
        {"project_id", sa.ProjectID},
        {"private_key", sa.PrivateKey},
        {"client_email", sa.ClientEmail},
        {"token_uri", sa.TokenURI},
    } {
        if strings.TrimSpace(f.value) == "" {
            missing = append(missing, f.name)
        }
    }
    if len(missing) > 0 {
        return nil, fmt.Errorf("missing service account fields: %s", strings.Join(missing, ", "))
    }

    // keys pasted into env vars usually carry literal \n
    sa.PrivateKey = strings.ReplaceAll(sa.PrivateKey, `\n`, "\n")
    return json.Marshal(sa)
}

// sheetsClient is the slice of the Sheets API the backend needs.
type sheetsClient interface {
    WorksheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
    AddWorksheet(ctx context.Context, spreadsheetID, title string) error
    AppendRow(ctx context.Context, spreadsheetID, rng string, row []interface{}) error
    GetRows(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
}

type sheetsAPI struct {
    svc *sheets.Service
}

func (a *sheetsAPI) WorksheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
    ss, err := a.svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
    if err != nil {
        return nil, err
    }
    titles := make([]string, 0, len(ss.Sheets))
    for _, sh := range ss.Sheets {
        if sh.Properties != nil {
            titles = append(titles, sh.Properties.Title)
        }
    }
    return titles, nil
}

func (a *sheetsAPI) AddWorksheet(ctx context.Context, spreadsheetID, title string) error {
    req := &sheets.BatchUpdateSpreadsheetRequest{
        Requests: []*sheets.Request{{
            AddSheet: &sheets.AddSheetRequest{
                Properties: &sheets.SheetProperties{
                    Title: title,
                    GridProperties: &sheets.GridProperties{
                        RowCount:    worksheetRows,
                        ColumnCount: int64(len(model.CallLogHeader)),
                    },
                },
            },
        }},
    }
    _, err := a.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
    return err
}

func (a *sheetsAPI) AppendRow(ctx context.Context, spreadsheetID, rng string, row []interface{}) error {
    vr := &sheets.ValueRange{Values: [][]interface{}{row}}
    _, err := a.svc.Spreadsheets.Values.Append(spreadsheetID, rng, vr).
        ValueInputOption("RAW").
        InsertDataOption("INSERT_ROWS").
        Context(ctx).
        Do()
    return err
}

func (a *sheetsAPI) GetRows(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
    resp, err := a.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
    if err != nil {
        return nil, err
    }
    return resp.Values, nil
}

// SheetsBackend appends call log rows to one worksheet of a spreadsheet.
type SheetsBackend struct {
    client        sheetsClient
    spreadsheetID string
    worksheet     string
}

// OpenSheetsBackend authenticates with the service account, checks the
// spreadsheet is reachable and creates the worksheet with its header row if absent.
func OpenSheetsBackend(ctx context.Context, cfg config.SheetsConfig) (*SheetsBackend, error) {
    id, err := SpreadsheetID(cfg.SpreadsheetURL)
    if err != nil {
        return nil, err
    }
    raw, err := ServiceAccountJSON(cfg)
    if err != nil {
        return nil, err
    }
    jwtCfg, err := google.JWTConfigFromJSON(raw, sheets.SpreadsheetsScope)
    if err != nil {
        return nil, fmt.Errorf("parse service account: %w", err)
    }
    // token refreshes outlive the startup context
    svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(context.Background())))
    if err != nil {
        return nil, fmt.Errorf("create sheets client: %w", err)
    }

    return newSheetsBackend(ctx, &sheetsAPI{svc: svc}, id, cfg.Worksheet)
}

func newSheetsBackend(ctx context.Context, client sheetsClient, spreadsheetID, worksheet string) (*SheetsBackend, error) {
    if worksheet == "" {
        worksheet = "call_log"
    }
    b := &SheetsBackend{client: client, spreadsheetID: spreadsheetID, worksheet: worksheet}
    if err := b.ensureWorksheet(ctx); err != nil {
        return nil, err
    }
    return b, nil
}

func (b *SheetsBackend) ensureWorksheet(ctx context.Context) error {
    titles, err := b.client.WorksheetTitles(ctx, b.spreadsheetID)
    if err != nil {
        return fmt.Errorf("open spreadsheet %s: %w", b.spreadsheetID, err)
    }

    exists := false
    for _, t := range titles {
        if t == b.worksheet {
            exists = true
            break
        }
    }

    if exists {
        // an earlier start may have created the worksheet but failed on the header
        first, err := b.client.GetRows(ctx, b.spreadsheetID, b.headerRange())
        if err != nil {
            return fmt.Errorf("read header of %s: %w", b.worksheet, err)
        }
        if len(first) > 0 && len(first[0]) > 0 {
            return nil
        }
    } else if err := b.client.AddWorksheet(ctx, b.spreadsheetID, b.worksheet); err != nil {
        return fmt.Errorf("create worksheet %s: %w", b.worksheet, err)
    }

    header := make([]interface{}, len(model.CallLogHeader))
    for i, h := range model.CallLogHeader {
        header[i] = h
    }
    if err := b.client.AppendRow(ctx, b.spreadsheetID, b.dataRange(), header); err != nil {
        return fmt.Errorf("write header to %s: %w", b.worksheet, err)
    }
    return nil
}

// dataRange quotes the worksheet title, doubling embedded single quotes.
func (b *SheetsBackend) dataRange() string {
    return fmt.Sprintf("'%s'!A:E", strings.ReplaceAll(b.worksheet, "'", "''"))
}

func (b *SheetsBackend) headerRange() string {
    return fmt.Sprintf("'%s'!A1:E1", strings.ReplaceAll(b.worksheet, "'", "''"))
}

func (b *SheetsBackend) Kind() BackendKind { return BackendSheets }

func (b *SheetsBackend) Append(ctx context.Context, entry *model.CallLogEntry) error {
    row := []interface{}{
        entry.Timestamp.UTC().Format(time.RFC3339),
        entry.Campaign,
        entry.CustomerID,
        string(entry.Outcome),
        entry.Note,
    }
    return b.client.AppendRow(ctx, b.spreadsheetID, b.dataRange(), row)
}

func (b *SheetsBackend) ReadAll(ctx context.Context) ([]model.CallLogEntry, error) {
    rows, err := b.client.GetRows(ctx, b.spreadsheetID, b.dataRange())
    if err != nil {
        return nil, err
    }

    entries := make([]model.CallLogEntry, 0, len(rows))
    for i, row := range rows {
        cells := make([]string, len(model.CallLogHeader))
        for j := range cells {
            if j < len(row) {
                cells[j] = fmt.Sprint(row[j])
            }
        }
        if i == 0 && cells[0] == model.CallLogHeader[0] {
            continue
        }
        if cells[1] == "" && cells[2] == "" {
            continue
        }

        entries = append(entries, model.CallLogEntry{
            Timestamp:  parseSheetTime(cells[0]),
            Campaign:   cells[1],
            CustomerID: cells[2],
            Outcome:    model.Outcome(cells[3]),
            Note:       cells[4],
        })
    }
    return entries, nil
}

// sheetTimeLayouts covers what we write plus what people type by hand.
var sheetTimeLayouts = []string{
    time.RFC3339,
    "2006-01-02 15:04:05",
    "2006-01-02T15:04:05",
    "2006-01-02 15:04",
    "2006-01-02",
    "1/2/2006 15:04:05",
    "1/2/2006",
}

// parseSheetTime returns the zero time for cells it cannot read, so one
// hand-edited row does not hide the rest of the log.
func parseSheetTime(cell string) time.Time {
    cell = strings.TrimSpace(cell)
    for _, layout := range sheetTimeLayouts {
        if ts, err := time.Parse(layout, cell); err == nil {
            return ts
        }
    }
    return time.Time{}
}
