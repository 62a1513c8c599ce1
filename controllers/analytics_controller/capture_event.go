package analytics_controller

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/services"
	"gorm.io/datatypes"
)

// CaptureEvent godoc
// @Summary Capture an analytics event
// @Description Queues a product event such as "search" or "set search filter". Always 202 once the body is valid; events are dropped when the queue is full.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body models.CaptureEventRequest true "Event"
// @Success 202 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /events [post]
func CaptureEvent(c *gin.Context) {
	var req models.CaptureEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "event is required"))
		return
	}

	props := req.Properties
	if props == nil {
		props = map[string]any{}
	}
	raw, err := json.Marshal(props)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "properties must be a JSON object"))
		return
	}

	distinctID := strings.TrimSpace(req.DistinctID)
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		distinctID = userID.String()
	}
	if distinctID == "" {
		distinctID = "anonymous"
	}

	accepted := false
	if recorder := services.GetAnalyticsRecorder(); recorder != nil {
		accepted = recorder.Enqueue(models.AnalyticsEvent{
			Event:      strings.TrimSpace(req.Event),
			DistinctID: distinctID,
			Properties: datatypes.JSON(raw),
			CapturedAt: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "Event received", gin.H{"queued": accepted}))
}
