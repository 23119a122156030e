package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

type loadDatasetRequest struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	ForceReload bool   `json:"force_reload"`
}

type loadDatasetResponse struct {
	Snapshot     snapshotMeta `json:"snapshot"`
	Transactions int          `json:"transaction_count"`
	Onboarding   int          `json:"onboarding_count"`
}

// LoadDataset materializes a date-range snapshot. With force_reload the
// cache entry for the range is replaced even when still fresh.
func (s *Server) LoadDataset(c *gin.Context) {
	var body loadDatasetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	startValue, err := parseOptionalTime(body.Start, false)
	if err != nil {
		AbortWithError(c, newValidationError("start", "invalid_time", "invalid start time"))
		return
	}
	endValue, err := parseOptionalTime(body.End, true)
	if err != nil {
		AbortWithError(c, newValidationError("end", "invalid_time", "invalid end time"))
		return
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)
	end := now
	if startValue != nil {
		start = startValue.UTC()
	}
	if endValue != nil {
		end = endValue.UTC()
	}
	if start.After(end) {
		AbortWithError(c, newValidationError("range", "invalid_range", "start must be before end"))
		return
	}

	snapshot, err := s.loader.Load(c.Request.Context(), datasetdomain.LoadRequest{
		Start:       start,
		End:         end,
		ForceReload: body.ForceReload,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loadDatasetResponse{
		Snapshot:     metaOf(snapshot),
		Transactions: len(snapshot.Transactions),
		Onboarding:   len(snapshot.Onboarding),
	})
}
