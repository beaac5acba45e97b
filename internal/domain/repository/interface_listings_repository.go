package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

type ListingsRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Update(ctx context.Context, listing *model.Listing) error
	// Delete 対象が存在しない場合はmodel.ErrListingNotFoundを返す
	Delete(ctx context.Context, id string) error
	ListByDonor(ctx context.Context, donorID string) ([]model.Listing, error)
	// ListExcluding 指定IDを除く公開中リスティングを作成順で返す
	ListExcluding(ctx context.Context, excludedIDs []string) ([]model.Listing, error)
}
