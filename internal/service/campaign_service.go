// internal/service/campaign_service.go
package service

import (
    "context"
    "strings"

    "github.com/unclebandit/outreach-tracker/internal/model"
    "github.com/unclebandit/outreach-tracker/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    CustomerRepo repository.CustomerRepositoryInterface
    CallLog      repository.CallLogBackend
}

type CampaignDetails struct {
    Name          string              `json:"name"`
    File          string              `json:"file"`
    CustomerCount int                 `json:"customer_count"`
    Stats         model.CampaignStats `json:"stats"`
}

// CustomerQuery filters and pages a campaign's call list.
type CustomerQuery struct {
    Page       int
    PageSize   int
    Search     string
    Branch     string
    HideCalled bool
}

// ListCampaigns returns every catalog campaign with its call progress.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]CampaignDetails, error) {
    entries, err := s.CallLog.ReadAll(ctx)
    if err != nil {
        return nil, err
    }

    campaigns := s.CampaignRepo.ListCampaigns()
    details := make([]CampaignDetails, 0, len(campaigns))
    for _, c := range campaigns {
        d, err := s.details(c, entries)
        if err != nil {
            return nil, err
        }
        details = append(details, *d)
    }
    return details, nil
}

func (s *CampaignService) GetCampaignDetailsWithStats(ctx context.Context, name string) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByName(name)
    if err != nil {
        return nil, err
    }
    entries, err := s.CallLog.ReadAll(ctx)
    if err != nil {
        return nil, err
    }
    return s.details(campaign, entries)
}

func (s *CampaignService) details(c *model.Campaign, entries []model.CallLogEntry) (*CampaignDetails, error) {
    customers, err := s.CustomerRepo.ListByCampaign(c.Name)
    if err != nil {
        return nil, err
    }
    latest := latestByCustomer(entries, c.Name)

    stats := model.NewCampaignStats(len(customers))
    for _, e := range entries {
        if strings.EqualFold(e.Campaign, c.Name) {
            stats.Entries++
        }
    }
    for _, cu := range customers {
        e, ok := latest[cu.ID]
        if !ok {
            continue
        }
        stats.Called++
        stats.ByOutcome[e.Outcome]++
        if e.Outcome == model.OutcomeFollowUp {
            stats.FollowUps++
        }
    }

    return &CampaignDetails{
        Name:          c.Name,
        File:          c.File,
        CustomerCount: len(customers),
        Stats:         stats,
    }, nil
}

// ListCustomers pages a campaign's customers, newest log entry attached.
func (s *CampaignService) ListCustomers(ctx context.Context, name string, q CustomerQuery) ([]model.CustomerRow, map[string]int, error) {
    if q.Page < 1 {
        q.Page = 1
    }
    if q.PageSize < 1 {
        q.PageSize = 20
    }
    if q.PageSize > 100 {
        q.PageSize = 100
    }

    campaign, err := s.CampaignRepo.GetByName(name)
    if err != nil {
        return nil, nil, err
    }
    customers, err := s.CustomerRepo.ListByCampaign(campaign.Name)
    if err != nil {
        return nil, nil, err
    }
    entries, err := s.CallLog.ReadAll(ctx)
    if err != nil {
        return nil, nil, err
    }
    latest := latestByCustomer(entries, campaign.Name)

    search := strings.ToLower(strings.TrimSpace(q.Search))
    filtered := []model.CustomerRow{}
    for _, cu := range customers {
        if q.Branch != "" && !strings.EqualFold(cu.Branch, q.Branch) {
            continue
        }
        if search != "" &&
            !strings.Contains(strings.ToLower(cu.Name), search) &&
            !strings.Contains(strings.ToLower(cu.ID), search) {
            continue
        }
        row := model.CustomerRow{Customer: cu}
        if e, ok := latest[cu.ID]; ok {
            e := e
            row.Called = true
            row.LastEntry = &e
        }
        if q.HideCalled && row.Called {
            continue
        }
        filtered = append(filtered, row)
    }

    total := len(filtered)
    // compare before multiplying so a huge page cannot overflow
    offset, end := total, total
    if q.Page-1 <= total/q.PageSize {
        offset = (q.Page - 1) * q.PageSize
        end = offset + q.PageSize
        if offset > total {
            offset = total
        }
        if end > total {
            end = total
        }
    }

    totalPages := (total + q.PageSize - 1) / q.PageSize
    pagination := map[string]int{
        "page":        q.Page,
        "page_size":   q.PageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return filtered[offset:end], pagination, nil
}

// CustomerHistory is one customer with every entry logged against it, oldest first.
type CustomerHistory struct {
    model.CustomerRow
    Campaign string               `json:"campaign"`
    Entries  []model.CallLogEntry `json:"entries"`
}

func (s *CampaignService) GetCustomer(ctx context.Context, name, id string) (*CustomerHistory, error) {
    campaign, err := s.CampaignRepo.GetByName(name)
    if err != nil {
        return nil, err
    }
    customer, err := s.CustomerRepo.GetByID(campaign.Name, id)
    if err != nil {
        return nil, err
    }
    entries, err := s.CallLog.ReadAll(ctx)
    if err != nil {
        return nil, err
    }

    h := &CustomerHistory{
        CustomerRow: model.CustomerRow{Customer: *customer},
        Campaign:    campaign.Name,
        Entries:     []model.CallLogEntry{},
    }
    for _, e := range entries {
        if strings.EqualFold(e.Campaign, campaign.Name) && e.CustomerID == customer.ID {
            h.Entries = append(h.Entries, e)
        }
    }
    if n := len(h.Entries); n > 0 {
        last := h.Entries[n-1]
        h.Called = true
        h.LastEntry = &last
    }
    return h, nil
}

// latestByCustomer keeps the last entry per customer id for one campaign.
func latestByCustomer(entries []model.CallLogEntry, campaign string) map[string]model.CallLogEntry {
    latest := map[string]model.CallLogEntry{}
    for _, e := range entries {
        if strings.EqualFold(e.Campaign, campaign) {
            latest[e.CustomerID] = e
        }
    }
    return latest
}
