package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// ListingUseCase 食品リスティングの登録・編集に関するビジネスロジック
type ListingUseCase interface {
	// CreateListing 寄付者のリスティングを新規作成（住所は作成時点の寄付者住所をコピー）
	CreateListing(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error)

	// UpdateListing リスティングの食品情報を更新（所有者のみ）
	UpdateListing(ctx context.Context, listingID string, req *model.UpdateListingRequest) (*model.Listing, error)

	// GetListing リスティング詳細を取得
	GetListing(ctx context.Context, listingID string) (*model.Listing, error)
}

// listingUseCaseImpl ListingUseCaseの実装
type listingUseCaseImpl struct {
	usersRepo    repository.UsersRepository
	listingsRepo repository.ListingsRepository
}

// NewListingUseCase ListingUseCaseの新しいインスタンスを作成
func NewListingUseCase(usersRepo repository.UsersRepository, listingsRepo repository.ListingsRepository) ListingUseCase {
	return &listingUseCaseImpl{
		usersRepo:    usersRepo,
		listingsRepo: listingsRepo,
	}
}

func (u *listingUseCaseImpl) CreateListing(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error) {
	if err := validateListingFields(req.FoodType, req.Quantity); err != nil {
		return nil, err
	}
	if req.DonorID == "" {
		return nil, fmt.Errorf("%w: 寄付者IDは必須です", model.ErrValidation)
	}

	donor, err := u.usersRepo.GetByID(ctx, req.DonorID)
	if err != nil {
		return nil, err
	}
	if donor.Role != model.UserRoleDonor {
		return nil, model.ErrForbidden
	}

	listing := &model.Listing{
		ID:          uuid.New().String(),
		DonorID:     donor.ID,
		FoodType:    req.FoodType,
		Quantity:    req.Quantity,
		Description: req.Description,
		Address:     donor.Address, // 作成時点のコピー。以後の住所変更には追随しない
		CreatedAt:   time.Now(),
	}

	if err := u.listingsRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("リスティングの保存失敗: %w", err)
	}

	return listing, nil
}

func (u *listingUseCaseImpl) UpdateListing(ctx context.Context, listingID string, req *model.UpdateListingRequest) (*model.Listing, error) {
	if err := validateListingFields(req.FoodType, req.Quantity); err != nil {
		return nil, err
	}

	listing, err := u.listingsRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.DonorID != req.EditorID {
		return nil, model.ErrForbidden
	}

	listing.FoodType = req.FoodType
	listing.Quantity = req.Quantity
	listing.Description = req.Description

	if err := u.listingsRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("リスティングの更新失敗: %w", err)
	}

	return listing, nil
}

func (u *listingUseCaseImpl) GetListing(ctx context.Context, listingID string) (*model.Listing, error) {
	return u.listingsRepo.GetByID(ctx, listingID)
}

func validateListingFields(foodType, quantity string) error {
	if foodType == "" {
		return fmt.Errorf("%w: 食品タイプは必須です", model.ErrValidation)
	}
	if quantity == "" {
		return fmt.Errorf("%w: 数量は必須です", model.ErrValidation)
	}
	return nil
}
