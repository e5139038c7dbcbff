// Package database opens the configured product store.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalog/internal/config"
	"catalog/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// Store is a connected product repository together with its lifecycle hooks.
type Store struct {
	Products repositories.ProductRepository
	Driver   string

	ping       func(ctx context.Context) error
	disconnect func(ctx context.Context) error
}

// Ping checks that the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the database connection.
func (s *Store) Close(ctx context.Context) error {
	if s.disconnect == nil {
		return nil
	}
	return s.disconnect(ctx)
}

// Open connects to the store selected by cfg.StorageDriver. It fails if the database
// cannot be reached, so handlers never run against an unconnected store.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openGORM(ctx, cfg.StorageDriver, postgres.Open(cfg.DatabaseDSN), cfg.AppEnv)
	case config.DriverSQLite:
		return openGORM(ctx, cfg.StorageDriver, sqlite.Open(cfg.DatabaseDSN), cfg.AppEnv)
	case config.DriverMemory:
		log.Println("Using in-memory product store; data is lost on restart")
		return &Store{Products: repositories.NewMockProductRepository(), Driver: cfg.StorageDriver}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openMongo(ctx context.Context, cfg config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			log.Printf("Error disconnecting from MongoDB: %v", dErr)
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Printf("MongoDB connected: database=%s collection=%s", cfg.MongoDatabase, cfg.MongoCollection)

	return &Store{
		Products: repositories.NewMongoProductRepository(client.Database(cfg.MongoDatabase), cfg.MongoCollection),
		Driver:   cfg.StorageDriver,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		disconnect: client.Disconnect,
	}, nil
}

func openGORM(ctx context.Context, driver string, dialector gorm.Dialector, env string) (*Store, error) {
	logLevel := logger.Warn
	if env == "development" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s connection pool: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}
	if err := repositories.MigrateProducts(db.WithContext(ctx)); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Printf("%s database connected", driver)

	return &Store{
		Products: repositories.NewGORMProductRepository(db),
		Driver:   driver,
		ping:     sqlDB.PingContext,
		disconnect: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
