// Package view holds the templ components for the HTML pages. Edit the
// .templ files and run `templ generate`; the _templ.go files are generated.
package view

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/unclebandit/outreach-tracker/internal/repository"
	"github.com/unclebandit/outreach-tracker/internal/service"
)

type LandingData struct {
	Status    repository.BackendStatus
	UserName  string
	Branch    int
	Campaigns []service.CampaignDetails
	Flash     string
}

// customersURL links a campaign's call list. Names come from file names and
// may contain '/', '#' or '?'.
func customersURL(name string) templ.SafeURL {
	return templ.URL("/campaigns/" + url.PathEscape(name) + "/customers")
}
