package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FoodBridge-App/internal/usecase"
)

// DashboardHandler 距離順マッチングビューのHTTPハンドラー
type DashboardHandler struct {
	matchingUseCase usecase.MatchingUseCase
}

// NewDashboardHandler DashboardHandlerの新しいインスタンスを作成
func NewDashboardHandler(matchingUseCase usecase.MatchingUseCase) *DashboardHandler {
	return &DashboardHandler{
		matchingUseCase: matchingUseCase,
	}
}

// GetDonorDashboard GET /api/donors/:id/dashboard - 寄付者ダッシュボード
func (h *DashboardHandler) GetDonorDashboard(c *gin.Context) {
	donorID := c.Param("id")

	dashboard, err := h.matchingUseCase.GetDonorDashboard(c.Request.Context(), donorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetReceiverDashboard GET /api/receivers/:id/dashboard - 受取団体ダッシュボード
func (h *DashboardHandler) GetReceiverDashboard(c *gin.Context) {
	receiverID := c.Param("id")

	dashboard, err := h.matchingUseCase.GetReceiverDashboard(c.Request.Context(), receiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
