package searchflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	EventSearch          = "search"
	EventSetSearchFilter = "set search filter"
)

// Analytics receives product events. Capture must not block the caller and
// its failures never reach the flow.
type Analytics interface {
	Capture(event string, properties map[string]any)
}

type NopAnalytics struct{}

func (NopAnalytics) Capture(string, map[string]any) {}

// HTTPAnalytics posts events to {baseURL}/api/events in the background.
type HTTPAnalytics struct {
	endpoint   string
	distinctID string
	client     *http.Client
	log        *zap.SugaredLogger

	wg sync.WaitGroup
}

func NewHTTPAnalytics(baseURL, distinctID string, client *http.Client, log *zap.SugaredLogger) *HTTPAnalytics {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HTTPAnalytics{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/events",
		distinctID: distinctID,
		client:     client,
		log:        log,
	}
}

func (a *HTTPAnalytics) Capture(event string, properties map[string]any) {
	payload, err := json.Marshal(map[string]any{
		"event":       event,
		"distinct_id": a.distinctID,
		"properties":  properties,
	})
	if err != nil {
		a.log.Warnw("analytics payload", "event", event, "error", err)
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.post(payload); err != nil {
			a.log.Debugw("analytics capture failed", "event", event, "error", err)
		}
	}()
}

func (a *HTTPAnalytics) post(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

// Wait blocks until every in-flight capture has finished.
func (a *HTTPAnalytics) Wait() {
	a.wg.Wait()
}
