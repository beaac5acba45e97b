package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

type PickupRequestsRepository interface {
	// Create 同一(listing, receiver)のリクエストが既に存在する場合、および
	// 対象リスティングが既に消えている場合は何もせずfalseを返す
	Create(ctx context.Context, request *model.PickupRequest) (bool, error)
	GetByID(ctx context.Context, id string) (*model.PickupRequest, error)
	ListByListing(ctx context.Context, listingID string) ([]model.PickupRequest, error)
	ListByReceiver(ctx context.Context, receiverID string) ([]model.PickupRequest, error)
	// Delete 対象が存在しない場合はmodel.ErrRequestNotFoundを返す
	Delete(ctx context.Context, id string) error
	// DeleteByListing リスティングに対する残存リクエストを一掃する
	DeleteByListing(ctx context.Context, listingID string) error
}
