// internal/controller/campaign_controller.go
package controller

import (
    "net/http"
    "net/url"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/unclebandit/outreach-tracker/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    campaigns, err := c.CampaignService.ListCampaigns(r.Context())
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "data": campaigns,
    })
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
    name := pathParam(r, "name")

    details, err := c.CampaignService.GetCampaignDetailsWithStats(r.Context(), name)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, details)
}

func (c *CampaignController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    name := pathParam(r, "name")

    // Parse query parameters
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    hideCalled, _ := strconv.ParseBool(r.URL.Query().Get("hide_called"))

    rows, pagination, err := c.CampaignService.ListCustomers(r.Context(), name, service.CustomerQuery{
        Page:       page,
        PageSize:   pageSize,
        Search:     r.URL.Query().Get("search"),
        Branch:     r.URL.Query().Get("branch"),
        HideCalled: hideCalled,
    })
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "data":       rows,
        "pagination": pagination, // page, page_size, total_count, total_pages
    })
}

func (c *CampaignController) GetCustomer(w http.ResponseWriter, r *http.Request) {
    history, err := c.CampaignService.GetCustomer(r.Context(), pathParam(r, "name"), pathParam(r, "id"))
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, history)
}

// pathParam decodes a route parameter. chi matches against the raw path when
// the request carries escapes such as %2F, and then hands back escaped values.
func pathParam(r *http.Request, key string) string {
    v := chi.URLParam(r, key)
    if r.URL.RawPath == "" {
        return v
    }
    if decoded, err := url.PathUnescape(v); err == nil {
        return decoded
    }
    return v
}
