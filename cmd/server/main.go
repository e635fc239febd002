// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/config"
	"github.com/unclebandit/outreach-tracker/internal/controller"
	"github.com/unclebandit/outreach-tracker/internal/handler"
	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/queue"
	"github.com/unclebandit/outreach-tracker/internal/repository"
	"github.com/unclebandit/outreach-tracker/internal/server"
	"github.com/unclebandit/outreach-tracker/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	catalog := repository.LoadCatalog(cfg.DataDir, cfg.Campaigns, log)

	// The backend is picked once; a remote outage after this point surfaces
	// as write errors rather than a silent switch.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store := repository.SelectBackend(ctx, repository.RemoteFromConfig(cfg), cfg.Storage.LocalPath, log)
	cancel()
	defer store.Close()

	var publisher queue.Publisher
	if cfg.AMQP.URL != "" {
		amqpQueue, err := queue.DialAMQP(cfg.AMQP.URL, log)
		if err != nil {
			log.Warn("⚠️ RabbitMQ unavailable, call events stay in process", zap.Error(err))
		} else {
			defer amqpQueue.Close()
			publisher = amqpQueue
		}
	}

	// Without a broker the tally runs here and shows up on /admin.
	var tally service.TallySource
	if publisher == nil {
		mem := queue.NewInMemoryQueue()
		worker := service.NewWorker(nil, log)
		mem.Subscribe(cfg.AMQP.Queue, worker.Handle)
		publisher, tally = mem, worker
	}

	callLogService := &service.CallLogService{
		Backend:   store,
		Publisher: publisher,
		Topic:     cfg.AMQP.Queue,
		Logger:    log,
	}
	campaignService := &service.CampaignService{
		CampaignRepo: catalog,
		CustomerRepo: catalog,
		CallLog:      store,
	}

	router := server.NewRouter(server.Routes{
		Calls: &controller.CallLogController{
			CallLogService: callLogService,
			Store:          store,
		},
		Campaigns: &controller.CampaignController{
			CampaignService: campaignService,
		},
		Dashboard: &controller.DashboardController{
			DashboardService: &service.DashboardService{
				Campaigns: campaignService,
				Tally:     tally,
			},
		},
		Pages: &handler.PageHandler{
			CampaignService: campaignService,
			Store:           store,
			Sessions:        handler.NewSessionStore(cfg.Session.Secret, cfg.Session.Timeout),
			Logger:          log,
		},
		Logger: log,
	})

	log.Info("🚀 Server running",
		zap.String("listen", cfg.Listen),
		zap.String("storage", store.Status().Label()),
		zap.Int("campaigns", len(catalog.ListCampaigns())),
	)
	if err := http.ListenAndServe(cfg.Listen, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
