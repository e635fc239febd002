// internal/controller/dashboard_controller.go
package controller

import (
    "net/http"

    "github.com/unclebandit/outreach-tracker/internal/service"
)

type DashboardController struct {
    DashboardService *service.DashboardService
}

// Dashboard is the leadership view: totals, per-campaign progress and recent activity.
func (c *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
    d, err := c.DashboardService.Build(r.Context())
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, d)
}
