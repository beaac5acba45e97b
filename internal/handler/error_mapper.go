package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"FoodBridge-App/internal/domain/model"
)

// respondError ドメインエラーをHTTPステータスに対応付けて返す
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrListingNotFound),
		errors.Is(err, model.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrListingNoLongerAvailable):
		// 並行操作に敗れた側への正常系の通知であり、クラッシュではない
		c.JSON(http.StatusConflict, gin.H{
			"error":   "no_longer_available",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
