package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/23bam037-tech/HITHESH-P-H/internal/events"
	"github.com/23bam037-tech/HITHESH-P-H/internal/export"
	"github.com/23bam037-tech/HITHESH-P-H/internal/server"
	"github.com/23bam037-tech/HITHESH-P-H/internal/server/ratelimit"
	"github.com/23bam037-tech/HITHESH-P-H/internal/session"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

var (
	servePort        int
	serveSessionTTL  string
	serveRabbitMQURL string
	serveChromePath  string
	serveHeartbeat   time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes one workflow session per client.

Each session is driven through JSON endpoints under /sessions/{id}; state changes
stream on /sessions/{id}/events. When a RabbitMQ URL is configured, events are also
published to the session_updates topic exchange.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT or 8080)")
	serveCmd.Flags().StringVar(&serveSessionTTL, "session-ttl", "", "Idle session lifetime, e.g. 2h")
	serveCmd.Flags().StringVar(&serveRabbitMQURL, "rabbitmq-url", "", "AMQP URL for publishing session events (optional)")
	serveCmd.Flags().StringVar(&serveChromePath, "chrome-path", "", "Chrome binary used for PDF export (optional)")
	serveCmd.Flags().DurationVar(&serveHeartbeat, "heartbeat", 15*time.Second, "Event stream keep-alive interval")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("session-ttl") {
		cfg.SessionTTL = serveSessionTTL
	}
	if cmd.Flags().Changed("rabbitmq-url") {
		cfg.RabbitMQURL = serveRabbitMQURL
	}
	if cmd.Flags().Changed("chrome-path") {
		cfg.ChromePath = serveChromePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	st := newStack(ctx, cfg)
	defer st.Close()

	broker := events.NewBroker(0)
	publisher := events.Multi{broker}
	if cfg.RabbitMQURL != "" {
		amqpPub, err := events.DialAMQP(cfg.RabbitMQURL, events.DefaultExchange)
		if err != nil {
			return fmt.Errorf("failed to connect event broker: %w", err)
		}
		defer amqpPub.Close()
		publisher = append(publisher, amqpPub)
		slog.Info("publishing session events", "exchange", events.DefaultExchange)
	}

	store := session.NewStore(func() workflow.Engines { return st.engines }, session.Options{
		TTL:       cfg.TTL(),
		Publisher: publisher,
		Broker:    broker,
		Logger:    slog.Default(),
	})
	store.StartSweeper(time.Minute)

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Sessions:  store,
		Broker:    broker,
		Renderer:  export.NewRenderer(cfg.ChromePath),
		RateLimit: ratelimit.LoadConfig(),
		Logger:    slog.Default(),
		Heartbeat: serveHeartbeat,
	})

	return srv.Start()
}
