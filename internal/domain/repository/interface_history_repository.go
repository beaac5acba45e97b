package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

// HistoryRepository 追記専用の履歴ストア（更新・削除操作は提供しない）
type HistoryRepository interface {
	Create(ctx context.Context, history *model.History) error
	ListByDonor(ctx context.Context, donorID string, statuses []model.HistoryStatus) ([]model.History, error)
	ListByReceiver(ctx context.Context, receiverID string, statuses []model.HistoryStatus) ([]model.History, error)
	ListListingIDsByStatus(ctx context.Context, status model.HistoryStatus) ([]string, error)
}
