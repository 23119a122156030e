package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	reportdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/report/domain"
)

type snapshotMeta struct {
	LoadID    string    `json:"load_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	LoadedAt  time.Time `json:"loaded_at"`
	FromCache bool      `json:"from_cache"`
}

func metaOf(snapshot *datasetdomain.Snapshot) snapshotMeta {
	return snapshotMeta{
		LoadID:    snapshot.LoadID,
		Start:     snapshot.Start,
		End:       snapshot.End,
		LoadedAt:  snapshot.LoadedAt,
		FromCache: snapshot.FromCache,
	}
}

func (s *Server) GetExecutiveSnapshot(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.ExecutiveSnapshot(c.Request.Context(), snapshot, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordReport(c, "executive_snapshot", req.PeriodType)
	c.JSON(http.StatusOK, gin.H{"snapshot": metaOf(snapshot), "report": resp})
}

func (s *Server) GetCustomerAcquisition(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.CustomerAcquisition(c.Request.Context(), snapshot, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordReport(c, "customer_acquisition", req.PeriodType)
	c.JSON(http.StatusOK, gin.H{"snapshot": metaOf(snapshot), "report": resp})
}

func (s *Server) GetProductUsage(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.ProductUsage(c.Request.Context(), snapshot, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordReport(c, "product_usage", req.PeriodType)
	c.JSON(http.StatusOK, gin.H{"snapshot": metaOf(snapshot), "report": resp})
}

func (s *Server) GetCustomerActivity(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.CustomerActivity(c.Request.Context(), snapshot, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordReport(c, "customer_activity", req.PeriodType)
	c.JSON(http.StatusOK, gin.H{"snapshot": metaOf(snapshot), "report": resp})
}

func (s *Server) ListProductStats(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.ProductTable(c.Request.Context(), snapshot, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordReport(c, "products", req.PeriodType)
	c.JSON(http.StatusOK, gin.H{"snapshot": metaOf(snapshot), "products": resp})
}

// loadForReport parses the common report query parameters and loads the
// matching snapshot, serving from cache unless force_reload is set.
func (s *Server) loadForReport(c *gin.Context) (*datasetdomain.Snapshot, reportdomain.Request, error) {
	req, forceReload, err := parseReportRequest(c)
	if err != nil {
		return nil, reportdomain.Request{}, err
	}

	snapshot, err := s.loader.Load(c.Request.Context(), datasetdomain.LoadRequest{
		Start:       req.Start,
		End:         req.End,
		ForceReload: forceReload,
	})
	if err != nil {
		return nil, reportdomain.Request{}, err
	}

	return snapshot, req, nil
}

func parseReportRequest(c *gin.Context) (reportdomain.Request, bool, error) {
	startValue, err := parseOptionalTime(c.Query("start"), false)
	if err != nil {
		return reportdomain.Request{}, false, newValidationError("start", "invalid_time", "invalid start time")
	}
	endValue, err := parseOptionalTime(c.Query("end"), true)
	if err != nil {
		return reportdomain.Request{}, false, newValidationError("end", "invalid_time", "invalid end time")
	}

	periodType, err := reportdomain.ParsePeriodType(c.Query("period_type"))
	if err != nil {
		return reportdomain.Request{}, false, newValidationError("period_type", "invalid_period_type", "period type must be weekly, monthly or rolling")
	}

	forceReloadValue, err := parseOptionalBool(c.Query("force_reload"))
	if err != nil {
		return reportdomain.Request{}, false, newValidationError("force_reload", "invalid_force_reload", "invalid force_reload flag")
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
	if startValue == nil && endValue != nil {
		start = end.AddDate(0, 0, -30)
	}
	if start.After(end) {
		return reportdomain.Request{}, false, newValidationError("range", "invalid_range", "start must be before end")
	}

	forceReload := false
	if forceReloadValue != nil {
		forceReload = *forceReloadValue
	}

	return reportdomain.Request{
		Start:      start,
		End:        end,
		PeriodType: periodType,
	}, forceReload, nil
}

func (s *Server) recordReport(c *gin.Context, bundle string, periodType reportdomain.PeriodType) {
	s.obsMetrics.RecordReportRequest(c.Request.Context(), bundle, string(periodType))
}
