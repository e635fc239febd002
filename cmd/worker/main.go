// cmd/worker/main.go
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/config"
	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/queue"
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

	if cfg.AMQP.URL == "" {
		log.Fatal("AMQP_URL is not set, nothing to consume")
	}

	// Connect to RabbitMQ
	q, err := queue.DialAMQP(cfg.AMQP.URL, log)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer q.Close()

	events, err := q.ConsumeCallLogged(cfg.AMQP.Queue)
	if err != nil {
		log.Fatal("Failed to register consumer", zap.Error(err))
	}

	log.Info("Worker running, waiting for call events...", zap.String("queue", cfg.AMQP.Queue))
	w := service.NewWorker(events, log)
	w.Start()

	log.Info("queue closed, final tally", zap.Any("tally", w.Tally()))
}
