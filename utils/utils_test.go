package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentParsing(t *testing.T) {
	tests := []struct {
		name, ua, device, browser, os string
	}{
		{
			name:    "iphone safari",
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			device:  "mobile",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "android chrome",
			ua:      "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			device:  "mobile",
			browser: "Chrome",
			os:      "Android",
		},
		{
			name:    "ipad",
			ua:      "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/604.1",
			device:  "tablet",
			browser: "Safari",
			os:      "iOS",
		},
		{
			name:    "windows edge",
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			device:  "desktop",
			browser: "Edge",
			os:      "Windows",
		},
		{
			name:    "mac firefox",
			ua:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.1; rv:121.0) Gecko/20100101 Firefox/121.0",
			device:  "desktop",
			browser: "Firefox",
			os:      "macOS",
		},
		{
			name:    "empty",
			device:  "desktop",
			browser: "Other",
			os:      "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.device, ParseDeviceType(tt.ua))
			assert.Equal(t, tt.browser, ParseBrowser(tt.ua))
			assert.Equal(t, tt.os, ParseOS(tt.ua))
		})
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query       string
		page, limit int
	}{
		{"", 1, DefaultPageLimit},
		{"page=3&limit=10", 3, 10},
		{"page=0&limit=0", 1, DefaultPageLimit},
		{"page=-2&limit=abc", 1, DefaultPageLimit},
		{"limit=1000", 1, MaxPageLimit},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

		page, limit := ParsePagination(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
	}
}

func TestIsSecureRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	assert.False(t, IsSecureRequest(c))

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, IsSecureRequest(c))
}

func TestWeekday(t *testing.T) {
	monday := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "monday", Weekday(monday))
	assert.Equal(t, "sunday", Weekday(monday.AddDate(0, 0, 6)))
}

func TestRandomHelpers(t *testing.T) {
	assert.Zero(t, RandomOffset(0))
	assert.Zero(t, RandomOffset(-4))

	for range 200 {
		off := RandomOffset(7)
		assert.GreaterOrEqual(t, off, 0)
		assert.Less(t, off, 7)

		n := RandomBetween(1, 11)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 11)
	}
	assert.Equal(t, 5, RandomBetween(5, 5))

	items := []int{1, 2, 3, 4, 5}
	shuffled := Shuffle(items)
	assert.ElementsMatch(t, items, shuffled)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)

	picked := GetMultipleRandom(items, 3)
	assert.Len(t, picked, 3)
	assert.Subset(t, items, picked)
	assert.Len(t, GetMultipleRandom(items, 10), 5)
}
