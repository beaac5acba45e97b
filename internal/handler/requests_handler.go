package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/usecase"
)

// RequestsHandler 引き取りリクエストに関するHTTPハンドラー
type RequestsHandler struct {
	fulfillmentUseCase usecase.FulfillmentUseCase
}

// NewRequestsHandler RequestsHandlerの新しいインスタンスを作成
func NewRequestsHandler(fulfillmentUseCase usecase.FulfillmentUseCase) *RequestsHandler {
	return &RequestsHandler{
		fulfillmentUseCase: fulfillmentUseCase,
	}
}

// SubmitRequest POST /api/listings/:id/requests - 引き取りリクエストの送信
// 重複送信・対象消失は204を返す（リクエストは作成されない）
func (h *RequestsHandler) SubmitRequest(c *gin.Context) {
	listingID := c.Param("id")

	var req model.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReceiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "receiver_id is required",
		})
		return
	}

	request, err := h.fulfillmentUseCase.SubmitRequest(c.Request.Context(), listingID, req.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	if request == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// UpdateRequestStatus PUT /api/requests/:id/status - リクエストの承認・却下
func (h *RequestsHandler) UpdateRequestStatus(c *gin.Context) {
	requestID := c.Param("id")

	var req model.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	history, err := h.fulfillmentUseCase.ResolveRequest(c.Request.Context(), requestID, model.HistoryStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
