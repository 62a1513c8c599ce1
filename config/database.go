package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// DB is the raw pgx pool, used where the ORM is not worth it (login events, health).
	DB *pgxpool.Pool
	// Gorm is the ORM handle used by every controller.
	Gorm *gorm.DB
)

func InitDB() {
	dsn := databaseURL()
	initPgx(dsn)
	initGORM(dsn)
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	Log.Warn("⚠️ DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		GetEnv("DB_USER", "postgres"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "localhost"),
		GetEnv("DB_PORT", "5432"),
		GetEnv("DB_NAME", "nomato"),
	)
}

func initPgx(dsn string) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		Log.Fatalw("❌ invalid database url", "error", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour

	DB, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		Log.Fatalw("❌ unable to connect to database", "error", err)
	}

	if err = DB.Ping(context.Background()); err != nil {
		Log.Fatalw("❌ database ping failed", "error", err)
	}

	Log.Info("✅ database connected (pgx)")
}

func initGORM(dsn string) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	Gorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		Log.Fatalw("❌ failed to connect to database with GORM", "error", err)
	}
	if sqlDB, err := Gorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	Log.Info("✅ database connected (GORM)")
}

// Migrate creates or updates every table the application owns.
func Migrate(models ...interface{}) error {
	if err := Gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	Log.Info("✅ schema migrated")
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
		Log.Info("✅ database connection closed (pgx)")
	}

	if Gorm != nil {
		sqlDB, _ := Gorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			Log.Info("✅ database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

// GetEnv reads key, falling back to defaultValue when unset or empty.
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction reports whether APP_ENV is "production".
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
