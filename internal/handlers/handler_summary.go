package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type summaryHandler struct {
	summaryService portssvc.SummarySvc
}

// RegisterSummaryRoutes registers the dashboard route.
func RegisterSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvc) {
	h := &summaryHandler{summaryService: summaryService}
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get the COD dashboard
// @Description Today's collections, pending work, status breakdown, top collectors and discrepancies
// @Tags summary
// @Produce  json
// @Param   hubId query string false "Hub ID"
// @Param   clientId query string false "Client ID"
// @Param   driverId query string false "Collecting agent ID"
// @Param   dateFrom query string false "Range start (RFC 3339)"
// @Param   dateTo query string false "Range end (RFC 3339)"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	summary, err := h.summaryService.GetSummary(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
