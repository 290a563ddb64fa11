package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client defines the operations exposed by the database client.
type Client interface {
	// Migrate runs gorm auto-migration for the given models.
	Migrate(dst ...any) error
	// DB returns the underlying gorm.DB for repository use.
	DB() *gorm.DB
	// Close closes the database connection.
	Close() error
}

type client struct {
	db *gorm.DB
}

// New opens a connection, configures the pool and verifies it with a ping.
func New(cfg Config) (Client, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s search_path=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.Schema, cfg.SSLMode)
	if cfg.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", cfg.ConnectTimeout)
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if cfg.Debug {
		logMode = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logMode})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &client{db: db}, nil
}

// Migrate runs auto-migration for all given models.
func (c *client) Migrate(dst ...any) error {
	if err := c.db.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// DB returns the underlying gorm.DB instance.
func (c *client) DB() *gorm.DB {
	return c.db
}

// Close closes the database connection.
func (c *client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
