// Package testutil swaps the global database and Redis handles for in-memory
// ones so handlers can be tested through the real router.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// OpenDB opens a private in-memory SQLite database, migrates every model and
// installs it as config.Gorm until the test ends. The pgx pool is unset so
// raw-SQL paths fall back to GORM.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	// A named shared-cache database survives across pooled connections; one
	// open connection keeps concurrent handlers from racing on the file lock.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	prevGorm, prevPool := config.Gorm, config.DB
	config.Gorm = db
	config.DB = nil
	t.Cleanup(func() {
		config.Gorm = prevGorm
		config.DB = prevPool
		_ = sqlDB.Close()
	})
	return db
}

// StartRedis runs miniredis and installs a client for it as
// config.RedisClient until the test ends.
func StartRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := config.RedisClient
	config.RedisClient = client
	t.Cleanup(func() {
		config.RedisClient = prev
		_ = client.Close()
	})
	return mr, client
}

// NoRedis clears config.RedisClient until the test ends.
func NoRedis(t testing.TB) {
	t.Helper()
	prev := config.RedisClient
	config.RedisClient = nil
	t.Cleanup(func() { config.RedisClient = prev })
}

// Restaurant builds a row with sensible defaults; categories and hours are
// stored as JSON like the importer does.
func Restaurant(placeID, name string, reviews int, priceLevel string, categories ...string) models.Restaurant {
	cats := datatypes.JSON("[]")
	if len(categories) > 0 {
		quoted := make([]string, len(categories))
		for i, c := range categories {
			quoted[i] = fmt.Sprintf("%q", c)
		}
		cats = datatypes.JSON("[" + strings.Join(quoted, ",") + "]")
	}
	return models.Restaurant{
		PlaceID:          placeID,
		GofoodName:       name,
		Rating:           4.5,
		UserRatingsTotal: reviews,
		Categories:       cats,
		PriceLevel:       priceLevel,
		OpeningHours:     datatypes.JSON(`{"monday":"10:00-22:00","tuesday":"10:00-22:00"}`),
	}
}

// Seed inserts rows and fails the test on error.
func Seed[T any](t testing.TB, db *gorm.DB, rows ...T) {
	t.Helper()
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}
