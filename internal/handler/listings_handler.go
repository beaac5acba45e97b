package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/usecase"
)

// ListingsHandler リスティングに関するHTTPハンドラー
type ListingsHandler struct {
	listingUseCase     usecase.ListingUseCase
	fulfillmentUseCase usecase.FulfillmentUseCase
}

// NewListingsHandler ListingsHandlerの新しいインスタンスを作成
func NewListingsHandler(listingUseCase usecase.ListingUseCase, fulfillmentUseCase usecase.FulfillmentUseCase) *ListingsHandler {
	return &ListingsHandler{
		listingUseCase:     listingUseCase,
		fulfillmentUseCase: fulfillmentUseCase,
	}
}

// CreateListing POST /api/listings - リスティングの作成
func (h *ListingsHandler) CreateListing(c *gin.Context) {
	var req model.CreateListingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	listing, err := h.listingUseCase.CreateListing(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// UpdateListing PUT /api/listings/:id - リスティングの編集（所有者のみ）
func (h *ListingsHandler) UpdateListing(c *gin.Context) {
	listingID := c.Param("id")

	var req model.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	listing, err := h.listingUseCase.UpdateListing(c.Request.Context(), listingID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// GetListing GET /api/listings/:id - リスティング詳細の取得
func (h *ListingsHandler) GetListing(c *gin.Context) {
	listingID := c.Param("id")

	listing, err := h.listingUseCase.GetListing(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// WithdrawListing DELETE /api/listings/:id - 寄付者によるリスティングの取り下げ
func (h *ListingsHandler) WithdrawListing(c *gin.Context) {
	listingID := c.Param("id")

	var req struct {
		DonorID string `json:"donor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.DonorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "donor_id is required",
		})
		return
	}

	history, err := h.fulfillmentUseCase.WithdrawListing(c.Request.Context(), listingID, req.DonorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
