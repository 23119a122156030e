package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/export"
	reportservice "github.com/laminkinte/business-development-dashboard-sub000/internal/report/service"
)

// ExportTransactions streams the period's cleaned transaction rows as CSV.
func (s *Server) ExportTransactions(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := reportservice.FilterTransactionsByRange(snapshot.Transactions, req.Start, req.End)

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := export.WriteTransactionsCSV(c.Writer, rows); err != nil {
		AbortWithError(c, err)
	}
}

// ExportOnboarding streams the period's cleaned onboarding rows as CSV.
func (s *Server) ExportOnboarding(c *gin.Context) {
	snapshot, req, err := s.loadForReport(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows := reportservice.FilterOnboardingByRange(snapshot.Onboarding, req.Start, req.End)

	c.Header("Content-Disposition", `attachment; filename="onboarding.csv"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := export.WriteOnboardingCSV(c.Writer, rows); err != nil {
		AbortWithError(c, err)
	}
}
