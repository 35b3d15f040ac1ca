package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/SscSPs/cod_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// depositHandler handles HTTP requests related to deposits.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

// RegisterDepositRoutes registers routes related to deposits.
func RegisterDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := &depositHandler{depositService: depositService, posthogClient: posthogClient}

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("", h.listDeposits)
		deposits.GET("/:depositID", h.getDeposit)
		deposits.POST("/:depositID/verify", h.verifyDeposit)
	}
}

// createDeposit godoc
// @Summary Create a deposit
// @Description Claims the collections for one custody transfer from an agent to a hub. Either every collection is claimed or none is.
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   deposit body dto.CreateDepositRequest true "Deposit details"
// @Success 201 {object} domain.Deposit
// @Failure 400 {object} dto.ErrorResponse "Missing fields, invalid amounts or an invalid collection set"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create deposit"
// @Security BearerAuth
// @Router /deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logger.Info("Received request to create deposit",
		slog.String("hub_id", req.HubID),
		slog.String("deposited_by_id", req.DepositedByID),
		slog.Int("collection_count", len(req.CollectionIDs)))

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondError(c, err, "Failed to create deposit")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "cod_deposit_created", map[string]any{
		"hub_id":           deposit.HubID,
		"status":           string(deposit.Status),
		"collection_count": deposit.CollectionCount,
		"expected_amount":  deposit.ExpectedAmount.String(),
		"shortage_amount":  deposit.ShortageAmount.String(),
	})
	c.JSON(http.StatusCreated, deposit)
}

// getDeposit godoc
// @Summary Get a deposit by ID
// @Description Returns the deposit with its linked collections
// @Tags deposits
// @Produce  json
// @Param   depositID path string true "Deposit ID"
// @Success 200 {object} domain.Deposit
// @Failure 404 {object} dto.ErrorResponse "Deposit not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve deposit"
// @Security BearerAuth
// @Router /deposits/{depositID} [get]
func (h *depositHandler) getDeposit(c *gin.Context) {
	deposit, err := h.depositService.GetDeposit(c.Request.Context(), c.Param("depositID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve deposit")
		return
	}
	c.JSON(http.StatusOK, deposit)
}

// listDeposits godoc
// @Summary List deposits
// @Tags deposits
// @Produce  json
// @Param   status query string false "VERIFIED or DISCREPANCY"
// @Param   hubId query string false "Hub ID"
// @Param   depositedById query string false "Depositing agent ID"
// @Param   dateFrom query string false "Earliest depositedAt (RFC 3339)"
// @Param   dateTo query string false "Latest depositedAt (RFC 3339)"
// @Param   page query int false "Page number" default(1)
// @Param   pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListDepositsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list deposits"
// @Security BearerAuth
// @Router /deposits [get]
func (h *depositHandler) listDeposits(c *gin.Context) {
	var params dto.ListDepositsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	page, err := h.depositService.ListDeposits(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list deposits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDepositsResponse(page, params))
}

// verifyDeposit godoc
// @Summary Verify a deposit
// @Description Records a manual verification of a DISCREPANCY deposit. The status and shortage are kept.
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   depositID path string true "Deposit ID"
// @Param   verification body dto.VerifyDepositRequest false "Verification note"
// @Success 200 {object} domain.Deposit
// @Failure 404 {object} dto.ErrorResponse "Deposit not found"
// @Failure 409 {object} dto.ErrorResponse "Already verified"
// @Failure 500 {object} dto.ErrorResponse "Failed to verify deposit"
// @Security BearerAuth
// @Router /deposits/{depositID}/verify [post]
func (h *depositHandler) verifyDeposit(c *gin.Context) {
	var req dto.VerifyDepositRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	deposit, err := h.depositService.VerifyDeposit(c.Request.Context(), c.Param("depositID"), actor, req.Note)
	if err != nil {
		respondError(c, err, "Failed to verify deposit")
		return
	}
	c.JSON(http.StatusOK, deposit)
}
