package repository

import (
	appErrors "github.com/unclebandit/outreach-tracker/internal/errors"
	"github.com/unclebandit/outreach-tracker/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	ListByCampaign(campaign string) ([]model.Customer, error)
	GetByID(campaign, id string) (*model.Customer, error)
}

// ListByCampaign returns the campaign's customers in file order
func (r *CatalogRepository) ListByCampaign(campaign string) ([]model.Customer, error) {
	customers, ok := r.customers[catalogKey(campaign)]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(campaign)
	}
	return customers, nil
}

// GetByID fetches one customer of a campaign
func (r *CatalogRepository) GetByID(campaign, id string) (*model.Customer, error) {
	customers, err := r.ListByCampaign(campaign)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, appErrors.NewCustomerNotFound(campaign, id)
}

var _ CustomerRepositoryInterface = (*CatalogRepository)(nil)
