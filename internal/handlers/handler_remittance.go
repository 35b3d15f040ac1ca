package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/SscSPs/cod_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// remittanceHandler handles HTTP requests related to client remittances.
type remittanceHandler struct {
	remittanceService portssvc.RemittanceSvcFacade
	posthogClient     *utils.PosthogClientWrapper
}

// RegisterRemittanceRoutes registers routes related to remittances.
func RegisterRemittanceRoutes(rg *gin.RouterGroup, remittanceService portssvc.RemittanceSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := &remittanceHandler{remittanceService: remittanceService, posthogClient: posthogClient}

	remittances := rg.Group("/remittances")
	{
		remittances.POST("", h.createRemittance)
		remittances.GET("", h.listRemittances)
		remittances.GET("/:remittanceID", h.getRemittance)
		remittances.PATCH("/:remittanceID/status", h.updateStatus)
		remittances.GET("/:remittanceID/statement", h.exportStatement)
	}
}

// createRemittance godoc
// @Summary Create a remittance
// @Description Claims deposited collections into one payout to a client. Explicit collectionIds must all be eligible; an empty list selects every eligible collection in the period.
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   remittance body dto.CreateRemittanceRequest true "Remittance details"
// @Success 201 {object} domain.Remittance
// @Failure 400 {object} dto.ErrorResponse "Missing fields, invalid amounts, an invalid collection set or nothing eligible"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create remittance"
// @Security BearerAuth
// @Router /remittances [post]
func (h *remittanceHandler) createRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logger.Info("Received request to create remittance",
		slog.String("client_id", req.ClientID),
		slog.Int("collection_count", len(req.CollectionIDs)))

	remittance, err := h.remittanceService.CreateRemittance(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondError(c, err, "Failed to create remittance")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "cod_remittance_created", map[string]any{
		"client_id":        remittance.ClientID,
		"collection_count": remittance.ShipmentCount,
		"net_remittance":   remittance.NetRemittance.String(),
	})
	c.JSON(http.StatusCreated, remittance)
}

// getRemittance godoc
// @Summary Get a remittance by ID
// @Description Returns the remittance with its linked collections
// @Tags remittances
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {object} domain.Remittance
// @Failure 404 {object} dto.ErrorResponse "Remittance not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve remittance"
// @Security BearerAuth
// @Router /remittances/{remittanceID} [get]
func (h *remittanceHandler) getRemittance(c *gin.Context) {
	remittance, err := h.remittanceService.GetRemittance(c.Request.Context(), c.Param("remittanceID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve remittance")
		return
	}
	c.JSON(http.StatusOK, remittance)
}

// listRemittances godoc
// @Summary List remittances
// @Tags remittances
// @Produce  json
// @Param   status query string false "PENDING, APPROVED or PAID"
// @Param   clientId query string false "Client ID"
// @Param   page query int false "Page number" default(1)
// @Param   pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListRemittancesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list remittances"
// @Security BearerAuth
// @Router /remittances [get]
func (h *remittanceHandler) listRemittances(c *gin.Context) {
	var params dto.ListRemittancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.remittanceService.ListRemittances(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list remittances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRemittancesResponse(page, params))
}

// updateStatus godoc
// @Summary Advance a remittance
// @Description Moves PENDING to APPROVED or APPROVED to PAID
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Param   status body dto.UpdateRemittanceStatusRequest true "Next status"
// @Success 200 {object} domain.Remittance
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Remittance not found"
// @Failure 409 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 500 {object} dto.ErrorResponse "Failed to update remittance"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/status [patch]
func (h *remittanceHandler) updateStatus(c *gin.Context) {
	var req dto.UpdateRemittanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	remittance, err := h.remittanceService.UpdateRemittanceStatus(c.Request.Context(), c.Param("remittanceID"), req.Status, actor, req.PaymentReference)
	if err != nil {
		respondError(c, err, "Failed to update remittance")
		return
	}
	c.JSON(http.StatusOK, remittance)
}

// exportStatement godoc
// @Summary Download a remittance statement
// @Description XLSX workbook with the remittance header and one row per shipment
// @Tags remittances
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Remittance not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to export statement"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/statement [get]
func (h *remittanceHandler) exportStatement(c *gin.Context) {
	remittanceID := c.Param("remittanceID")
	content, err := h.remittanceService.ExportRemittanceStatement(c.Request.Context(), remittanceID)
	if err != nil {
		respondError(c, err, "Failed to export statement")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="remittance-%s.xlsx"`, remittanceID))
	c.Data(http.StatusOK, xlsxContentType, content)
}
