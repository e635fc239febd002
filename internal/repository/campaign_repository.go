package repository

import (
    "encoding/csv"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "sort"
    "strings"

    "go.uber.org/zap"
    "golang.org/x/text/cases"
    "golang.org/x/text/language"

    "github.com/unclebandit/outreach-tracker/internal/config"
    appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
    "github.com/unclebandit/outreach-tracker/internal/logger"
    "github.com/unclebandit/outreach-tracker/internal/model"
)

type CampaignRepositoryInterface interface {
    ListCampaigns() []*model.Campaign
    GetByName(name string) (*model.Campaign, error)
}

var (
    idColumns     = []string{"customer_id", "id", "cust_id", "customer_number"}
    nameColumns   = []string{"customer_name", "name", "company"}
    branchColumns = []string{"branch_name", "branch"}
)

// CatalogRepository is the read-only campaign and customer reference data,
// loaded once from CSV files.
type CatalogRepository struct {
    campaigns []*model.Campaign
    customers map[string][]model.Customer
}

func NewCatalogRepository() *CatalogRepository {
    return &CatalogRepository{customers: map[string][]model.Customer{}}
}

// LoadCatalog reads the configured sources, or every *.csv in dir when none
// are configured. Files that cannot be read are skipped with a warning.
func LoadCatalog(dir string, sources []config.CampaignSource, log *zap.Logger) *CatalogRepository {
    log = logger.OrNop(log)
    repo := NewCatalogRepository()

    if len(sources) == 0 {
        matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
        if err != nil {
            log.Warn("⚠️ cannot list campaign files", zap.String("dir", dir), zap.Error(err))
        }
        sort.Strings(matches)
        for _, m := range matches {
            sources = append(sources, config.CampaignSource{File: filepath.Base(m)})
        }
    }

    for _, src := range sources {
        path := src.File
        if !filepath.IsAbs(path) {
            path = filepath.Join(dir, path)
        }
        if src.Name == "" {
            src.Name = CampaignNameFromFile(path)
        }

        f, err := os.Open(path)
        if err != nil {
            log.Warn("⚠️ skipping campaign file", zap.String("campaign", src.Name), zap.Error(err))
            continue
        }
        customers, err := ReadCustomers(f, src)
        f.Close()
        if err != nil {
            log.Warn("⚠️ skipping campaign file", zap.String("campaign", src.Name), zap.Error(err))
            continue
        }
        if err := repo.Add(&model.Campaign{Name: src.Name, File: filepath.Base(path)}, customers); err != nil {
            log.Warn("⚠️ skipping campaign file", zap.String("campaign", src.Name), zap.Error(err))
            continue
        }
        log.Info("loaded campaign", zap.String("campaign", src.Name), zap.Int("customers", len(customers)))
    }

    return repo
}

// Add registers a campaign. Names are unique, compared case-insensitively.
func (r *CatalogRepository) Add(c *model.Campaign, customers []model.Customer) error {
    key := catalogKey(c.Name)
    if key == "" {
        return fmt.Errorf("campaign name is empty")
    }
    if _, exists := r.customers[key]; exists {
        return fmt.Errorf("duplicate campaign %q", c.Name)
    }
    c.CustomerCount = len(customers)
    r.campaigns = append(r.campaigns, c)
    r.customers[key] = customers
    return nil
}

func (r *CatalogRepository) ListCampaigns() []*model.Campaign {
    return r.campaigns
}

func (r *CatalogRepository) GetByName(name string) (*model.Campaign, error) {
    key := catalogKey(name)
    for _, c := range r.campaigns {
        if catalogKey(c.Name) == key {
            return c, nil
        }
    }
    return nil, appErrors.NewCampaignNotFound(name)
}

// CampaignNameFromFile turns data_parts_campaign.csv into "Parts Campaign".
func CampaignNameFromFile(path string) string {
    base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
    base = strings.TrimPrefix(base, "data_")
    base = strings.Join(strings.Fields(strings.ReplaceAll(base, "_", " ")), " ")
    return cases.Title(language.English).String(base)
}

// ReadCustomers parses one campaign CSV. Rows with an empty id are dropped.
func ReadCustomers(rd io.Reader, src config.CampaignSource) ([]model.Customer, error) {
    cr := csv.NewReader(rd)
    cr.FieldsPerRecord = -1
    cr.TrimLeadingSpace = true

    header, err := cr.Read()
    if err == io.EOF {
        return []model.Customer{}, nil
    }
    if err != nil {
        return nil, fmt.Errorf("read header: %w", err)
    }
    if len(header) > 0 {
        header[0] = strings.TrimPrefix(header[0], "\ufeff")
    }
    for i := range header {
        header[i] = strings.TrimSpace(header[i])
    }

    idCol := findColumn(header, src.IDColumn, idColumns, 0)
    nameCol := findColumn(header, src.NameColumn, nameColumns, 1)
    if nameCol >= len(header) {
        nameCol = idCol
    }
    branchCol := findColumn(header, src.BranchColumn, branchColumns, -1)

    customers := []model.Customer{}
    for {
        rec, err := cr.Read()
        if err == io.EOF {
            break
        }
        if err != nil {
            return nil, err
        }

        c := model.Customer{
            ID:     strings.TrimSpace(cell(rec, idCol)),
            Name:   strings.TrimSpace(cell(rec, nameCol)),
            Branch: strings.TrimSpace(cell(rec, branchCol)),
            Fields: make(map[string]string, len(header)),
        }
        if c.ID == "" {
            continue
        }
        for i, h := range header {
            c.Fields[h] = cell(rec, i)
        }
        customers = append(customers, c)
    }
    return customers, nil
}

func findColumn(header []string, configured string, candidates []string, fallback int) int {
    if configured != "" {
        candidates = []string{configured}
    }
    for _, want := range candidates {
        for i, h := range header {
            if strings.EqualFold(h, want) {
                return i
            }
        }
    }
    return fallback
}

func cell(rec []string, i int) string {
    if i < 0 || i >= len(rec) {
        return ""
    }
    return rec[i]
}

func catalogKey(name string) string {
    return strings.ToLower(strings.TrimSpace(name))
}

var _ CampaignRepositoryInterface = (*CatalogRepository)(nil)
