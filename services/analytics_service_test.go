package services

import (
	"context"
	"testing"
	"time"

	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func event(name string) models.AnalyticsEvent {
	return models.AnalyticsEvent{
		Event:      name,
		DistinctID: "anonymous",
		Properties: datatypes.JSON(`{"origin":"search page"}`),
		CapturedAt: time.Now().UTC(),
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	db := testutil.OpenDB(t)
	r := NewAnalyticsRecorder(db, 2)

	// Not started, so nothing drains the queue.
	assert.True(t, r.Enqueue(event("search")))
	assert.True(t, r.Enqueue(event("search")))
	assert.False(t, r.Enqueue(event("search")))
	assert.Equal(t, int64(1), r.Dropped())

	r.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	assert.Equal(t, int64(2), r.Stored())

	var count int64
	require.NoError(t, db.Model(&models.AnalyticsEvent{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRecorderRejectsAfterStop(t *testing.T) {
	db := testutil.OpenDB(t)
	r := NewAnalyticsRecorder(db, 4)
	r.Start()

	require.NoError(t, r.Stop(context.Background()))
	assert.False(t, r.Enqueue(event("search")))
	assert.Zero(t, r.Dropped())

	// Stopping twice is harmless.
	require.NoError(t, r.Stop(context.Background()))
}

func TestRecorderStopHonoursContext(t *testing.T) {
	db := testutil.OpenDB(t)
	r := NewAnalyticsRecorder(db, 4)
	r.Enqueue(event("search"))

	// Never started: the queue cannot drain.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Stop(ctx), context.DeadlineExceeded)
}
