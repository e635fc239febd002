// Package server assembles the chi router for the web process.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/controller"
	"github.com/unclebandit/outreach-tracker/internal/handler"
	"github.com/unclebandit/outreach-tracker/internal/logger"
)

type Routes struct {
	Calls     *controller.CallLogController
	Campaigns *controller.CampaignController
	Dashboard *controller.DashboardController
	Pages     *handler.PageHandler
	Logger    *zap.Logger
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger.OrNop(rt.Logger)))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/status", rt.Calls.Status)

	// Pages
	r.Get("/", rt.Pages.Landing)
	r.Post("/login", rt.Pages.Login)
	r.Post("/logout", rt.Pages.Logout)

	// Campaign routes
	r.Get("/campaigns", rt.Campaigns.ListCampaigns)
	r.Get("/campaigns/{name}", rt.Campaigns.GetCampaignDetails)
	r.Get("/campaigns/{name}/customers", rt.Campaigns.ListCustomers)
	r.Get("/campaigns/{name}/customers/{id}", rt.Campaigns.GetCustomer)

	// Call log routes
	r.Post("/calls", rt.Calls.RecordCall)
	r.Get("/calls", rt.Calls.ListCalls)
	r.Get("/calls.csv", rt.Calls.ExportCSV)

	// Leadership view
	r.Get("/admin", rt.Dashboard.Dashboard)

	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
