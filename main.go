package main

import (
	"context"
	"errors"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/models"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	v := config.New()
	if err := config.ReadEnvFile(v, ".env"); err != nil {
		log.Fatalf("Failed to read .env: %v", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Connect storage before any handler can run ---
	store, err := database.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to %s storage: %v", cfg.StorageDriver, err)
	}

	// --- Optional RabbitMQ Client ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		publisher = mqClient

		if cfg.ConsumeEvents {
			err = mqClient.ConsumeProductEvents(func(event models.ProductEvent) error {
				log.Printf("Received product event %s for %s", event.Type, event.ProductID)
				return nil
			})
			if err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set; product events are disabled")
	}

	// --- Services and HTTP app ---
	productService := services.NewProductService(store.Products, publisher)
	app := server.New(server.Dependencies{
		ProductService:   productService,
		Health:           store,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	// --- Start HTTP Server ---
	go func() {
		log.Printf("Server running in %s mode on %s (storage: %s)", cfg.AppEnv, cfg.AppPort, store.Driver)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain requests before releasing storage and MQ.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"catalog": func(ctx context.Context) error {
				log.Println("Shutting down server...")
				var errs []error
				if err := app.ShutdownWithContext(ctx); err != nil {
					errs = append(errs, err)
				}
				if err := store.Close(ctx); err != nil {
					errs = append(errs, err)
				}
				if mqClient != nil {
					if err := mqClient.Close(); err != nil {
						errs = append(errs, err)
					}
				}
				return errors.Join(errs...)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server stopped with exit code %d", exitCode)
	os.Exit(exitCode)
}
