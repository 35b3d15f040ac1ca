package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to the ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// RegisterLedgerRoutes registers routes related to the ledger.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/custody", h.custodyReport)
		ledger.POST("/adjustments", h.postAdjustment)
		ledger.GET("/:accountType/:accountID/balance", h.getBalance)
		ledger.GET("/:accountType/:accountID/entries", h.listEntries)
	}
}

func accountFromPath(c *gin.Context) domain.Account {
	return domain.Account{
		Type: domain.AccountType(strings.ToUpper(c.Param("accountType"))),
		ID:   c.Param("accountID"),
	}
}

// getBalance godoc
// @Summary Get an account balance
// @Description Sum of signed entries for the account. HUB accounts include deposits attributed to the hub.
// @Tags ledger
// @Produce  json
// @Param   accountType path string true "AGENT, HUB or CLIENT"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.AccountBalance
// @Failure 400 {object} dto.ErrorResponse "Invalid account"
// @Failure 500 {object} dto.ErrorResponse "Failed to compute balance"
// @Security BearerAuth
// @Router /ledger/{accountType}/{accountID}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	balance, err := h.ledgerService.BalanceFor(c.Request.Context(), accountFromPath(c))
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, balance)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Entries for the account, newest first. Pass nextToken to continue.
// @Tags ledger
// @Produce  json
// @Param   accountType path string true "AGENT, HUB or CLIENT"
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid account or token"
// @Failure 500 {object} dto.ErrorResponse "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/{accountType}/{accountID}/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	account := accountFromPath(c)
	entries, next, err := h.ledgerService.ListLedgerEntries(c.Request.Context(), account, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	c.JSON(http.StatusOK, dto.ListLedgerEntriesResponse{Account: account, Entries: entries, NextToken: next})
}

// postAdjustment godoc
// @Summary Post a ledger adjustment
// @Description Appends a manual correction entry. Existing entries are never edited.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.PostAdjustmentRequest true "Adjustment"
// @Success 201 {object} domain.LedgerEntry
// @Failure 400 {object} dto.ErrorResponse "Invalid adjustment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to post adjustment"
// @Security BearerAuth
// @Router /ledger/adjustments [post]
func (h *ledgerHandler) postAdjustment(c *gin.Context) {
	var req dto.PostAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	entry, err := h.ledgerService.PostAdjustment(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondError(c, err, "Failed to post adjustment")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// custodyReport godoc
// @Summary Check cash in custody
// @Description Compares deposited cash less remitted cash against the ledger totals
// @Tags ledger
// @Produce  json
// @Success 200 {object} domain.CustodyReport
// @Failure 500 {object} dto.ErrorResponse "Failed to build custody report"
// @Security BearerAuth
// @Router /ledger/custody [get]
func (h *ledgerHandler) custodyReport(c *gin.Context) {
	report, err := h.ledgerService.CustodyReport(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build custody report")
		return
	}
	c.JSON(http.StatusOK, report)
}
