package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cod_ledger/internal/core/ports/services"
	"github.com/SscSPs/cod_ledger/internal/dto"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/SscSPs/cod_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// collectionHandler handles HTTP requests related to COD collections.
type collectionHandler struct {
	collectionService portssvc.CollectionSvcFacade
	posthogClient     *utils.PosthogClientWrapper
}

// RegisterCollectionRoutes registers routes related to collections.
func RegisterCollectionRoutes(rg *gin.RouterGroup, collectionService portssvc.CollectionSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := &collectionHandler{collectionService: collectionService, posthogClient: posthogClient}

	collections := rg.Group("/collections")
	{
		collections.POST("", h.recordCollection)
		collections.GET("", h.listCollections)
		collections.GET("/eligible/deposit", h.listEligibleForDeposit)
		collections.GET("/eligible/remittance", h.listEligibleForRemittance)
		collections.GET("/:collectionID", h.getCollection)
		collections.POST("/:collectionID/dispute", h.raiseDispute)
	}
}

// recordCollection godoc
// @Summary Record a COD collection
// @Description Called by the delivery pipeline when a COD shipment is delivered. Re-posting an awb rewrites its record until a deposit claims it.
// @Tags collections
// @Accept  json
// @Produce  json
// @Param   collection body dto.RecordCollectionRequest true "Delivery completion"
// @Success 201 {object} domain.Collection
// @Failure 400 {object} dto.ErrorResponse "Missing fields or invalid amounts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "The awb is already claimed"
// @Failure 500 {object} dto.ErrorResponse "Failed to record collection"
// @Security BearerAuth
// @Router /collections [post]
func (h *collectionHandler) recordCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	logger.Info("Received delivery completion", slog.String("awb_number", req.AWBNumber), slog.String("hub_id", req.HubID))
	collection, err := h.collectionService.RecordCollection(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to record collection")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "cod_collection_recorded", map[string]any{
		"hub_id":       collection.HubID,
		"client_id":    collection.ClientID,
		"payment_mode": string(collection.PaymentMode),
		"amount":       collection.CollectedAmount.String(),
	})
	c.JSON(http.StatusCreated, collection)
}

// getCollection godoc
// @Summary Get a collection by ID
// @Tags collections
// @Produce  json
// @Param   collectionID path string true "Collection ID"
// @Success 200 {object} domain.Collection
// @Failure 404 {object} dto.ErrorResponse "Collection not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve collection"
// @Security BearerAuth
// @Router /collections/{collectionID} [get]
func (h *collectionHandler) getCollection(c *gin.Context) {
	collection, err := h.collectionService.GetCollection(c.Request.Context(), c.Param("collectionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve collection")
		return
	}
	c.JSON(http.StatusOK, collection)
}

// listCollections godoc
// @Summary List collections
// @Tags collections
// @Produce  json
// @Param   status query string false "COLLECTED, DEPOSITED, RECONCILED or DISPUTED"
// @Param   hubId query string false "Hub ID"
// @Param   collectorId query string false "Collecting agent ID"
// @Param   clientId query string false "Client ID"
// @Param   depositId query string false "Deposit ID"
// @Param   remittanceId query string false "Remittance ID"
// @Param   page query int false "Page number" default(1)
// @Param   pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListCollectionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} dto.ErrorResponse "Failed to list collections"
// @Security BearerAuth
// @Router /collections [get]
func (h *collectionHandler) listCollections(c *gin.Context) {
	var params dto.ListCollectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	filter := params.ToFilter()
	collections, total, err := h.collectionService.ListCollections(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list collections")
		return
	}
	if collections == nil {
		collections = []domain.Collection{}
	}
	c.JSON(http.StatusOK, dto.ListCollectionsResponse{
		Collections: collections,
		Total:       total,
		Page:        params.Page,
		PageSize:    params.PageSize,
	})
}

// listEligibleForDeposit godoc
// @Summary List collections a deposit may claim
// @Tags collections
// @Produce  json
// @Param   hubId query string false "Hub ID"
// @Param   collectorId query string false "Collecting agent ID"
// @Success 200 {object} dto.EligibleCollectionsResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list eligible collections"
// @Security BearerAuth
// @Router /collections/eligible/deposit [get]
func (h *collectionHandler) listEligibleForDeposit(c *gin.Context) {
	var params dto.EligibleForDepositParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	collections, err := h.collectionService.ListEligibleForDeposit(c.Request.Context(), params.HubID, params.CollectorID)
	if err != nil {
		respondError(c, err, "Failed to list eligible collections")
		return
	}
	c.JSON(http.StatusOK, dto.ToEligibleCollectionsResponse(collections))
}

// listEligibleForRemittance godoc
// @Summary List collections a remittance would claim
// @Description Deposited, unreconciled collections for the client's shipments delivered within the period.
// @Tags collections
// @Produce  json
// @Param   clientId query string true "Client ID"
// @Param   periodStart query string true "Period start (RFC 3339)"
// @Param   periodEnd query string true "Period end (RFC 3339)"
// @Success 200 {object} dto.EligibleCollectionsResponse
// @Failure 400 {object} dto.ErrorResponse "Missing client or invalid period"
// @Failure 500 {object} dto.ErrorResponse "Failed to list eligible collections"
// @Security BearerAuth
// @Router /collections/eligible/remittance [get]
func (h *collectionHandler) listEligibleForRemittance(c *gin.Context) {
	var params dto.EligibleForRemittanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	period := domain.Period{Start: *params.PeriodStart, End: *params.PeriodEnd}
	collections, err := h.collectionService.ListEligibleForRemittance(c.Request.Context(), params.ClientID, period)
	if err != nil {
		respondError(c, err, "Failed to list eligible collections")
		return
	}
	c.JSON(http.StatusOK, dto.ToEligibleCollectionsResponse(collections))
}

// raiseDispute godoc
// @Summary Dispute a collection
// @Description Moves the collection to DISPUTED. A disputed collection can no longer be claimed.
// @Tags collections
// @Accept  json
// @Produce  json
// @Param   collectionID path string true "Collection ID"
// @Param   dispute body dto.RaiseDisputeRequest true "Dispute reason"
// @Success 200 {object} domain.Collection
// @Failure 400 {object} dto.ErrorResponse "Missing reason"
// @Failure 404 {object} dto.ErrorResponse "Collection not found"
// @Failure 409 {object} dto.ErrorResponse "Already disputed"
// @Failure 500 {object} dto.ErrorResponse "Failed to raise dispute"
// @Security BearerAuth
// @Router /collections/{collectionID}/dispute [post]
func (h *collectionHandler) raiseDispute(c *gin.Context) {
	var req dto.RaiseDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	collection, err := h.collectionService.RaiseDispute(c.Request.Context(), c.Param("collectionID"), req.Reason, actor)
	if err != nil {
		respondError(c, err, "Failed to raise dispute")
		return
	}
	c.JSON(http.StatusOK, collection)
}
