package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// FulfillmentUseCase リスティングのライフサイクルを司る状態機械
// 遷移: Open → Approved / Removed、リクエスト: Pending → 承認 / 却下
// 終端状態はすべて履歴レコードのみで表現され、リスティング・リクエストの
// 実体は終端到達と同時に消える
type FulfillmentUseCase interface {
	// SubmitRequest 公開中リスティングへの引き取りリクエストを登録する
	// 重複送信および存在しないリスティングへの送信は何もせずnilを返す（エラーではない）
	SubmitRequest(ctx context.Context, listingID, receiverID string) (*model.PickupRequest, error)

	// ResolveRequest リクエストを承認または却下し、履歴を記録する
	// 履歴追記・リクエスト削除・（承認時の）リスティング削除は単一トランザクションで行う
	ResolveRequest(ctx context.Context, requestID string, decision model.HistoryStatus) (*model.History, error)

	// WithdrawListing 寄付者自身によるリスティングの取り下げ
	// 残存リクエストの有無に関わらず常に実行でき、受取団体なしの履歴を残す
	WithdrawListing(ctx context.Context, listingID, donorID string) (*model.History, error)
}

// fulfillmentUseCaseImpl FulfillmentUseCaseの実装
type fulfillmentUseCaseImpl struct {
	usersRepo    repository.UsersRepository
	listingsRepo repository.ListingsRepository
	requestsRepo repository.PickupRequestsRepository
	historyRepo  repository.HistoryRepository
	transactor   repository.Transactor
}

// NewFulfillmentUseCase FulfillmentUseCaseの新しいインスタンスを作成
func NewFulfillmentUseCase(
	usersRepo repository.UsersRepository,
	listingsRepo repository.ListingsRepository,
	requestsRepo repository.PickupRequestsRepository,
	historyRepo repository.HistoryRepository,
	transactor repository.Transactor,
) FulfillmentUseCase {
	return &fulfillmentUseCaseImpl{
		usersRepo:    usersRepo,
		listingsRepo: listingsRepo,
		requestsRepo: requestsRepo,
		historyRepo:  historyRepo,
		transactor:   transactor,
	}
}

func (u *fulfillmentUseCaseImpl) SubmitRequest(ctx context.Context, listingID, receiverID string) (*model.PickupRequest, error) {
	receiver, err := u.usersRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver.Role != model.UserRoleReceiver {
		return nil, model.ErrForbidden
	}

	// 公開中でないリスティングへのリクエストは作成せず黙って無視する
	if _, err := u.listingsRepo.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, model.ErrListingNotFound) {
			return nil, nil
		}
		return nil, err
	}

	request := &model.PickupRequest{
		ID:         uuid.New().String(),
		ListingID:  listingID,
		ReceiverID: receiverID,
		CreatedAt:  time.Now(),
	}

	created, err := u.requestsRepo.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("引き取りリクエストの登録失敗: %w", err)
	}
	if !created {
		// 同一(listing, receiver)の重複送信。既存リクエストを維持する
		return nil, nil
	}

	return request, nil
}

func (u *fulfillmentUseCaseImpl) ResolveRequest(ctx context.Context, requestID string, decision model.HistoryStatus) (*model.History, error) {
	if !decision.IsResolution() {
		return nil, fmt.Errorf("%w: 不正な決定です: %s", model.ErrValidation, decision)
	}

	var history *model.History
	err := u.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := u.requestsRepo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		listing, err := u.listingsRepo.GetByID(txCtx, request.ListingID)
		if err != nil {
			if errors.Is(err, model.ErrListingNotFound) {
				// 並行する承認・取り下げでリスティングが先に消えている
				return model.ErrListingNoLongerAvailable
			}
			return err
		}

		receiverID := request.ReceiverID
		history = newHistorySnapshot(listing, &receiverID, decision)
		if err := u.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("履歴の記録失敗: %w", err)
		}

		// リクエストは決定内容に関わらず消費される
		// 0行削除は競合する解決が先に勝ったことを意味し、履歴の二重追記を防ぐため中断する
		if err := u.requestsRepo.Delete(txCtx, request.ID); err != nil {
			return err
		}

		if decision == model.HistoryStatusApproved {
			// 承認はリスティングを終端させる。兄弟リクエストは同一トランザクション内で一掃する
			if err := u.requestsRepo.DeleteByListing(txCtx, listing.ID); err != nil {
				return err
			}
			if err := u.listingsRepo.Delete(txCtx, listing.ID); err != nil {
				if errors.Is(err, model.ErrListingNotFound) {
					return model.ErrListingNoLongerAvailable
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return history, nil
}

func (u *fulfillmentUseCaseImpl) WithdrawListing(ctx context.Context, listingID, donorID string) (*model.History, error) {
	var history *model.History
	err := u.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		listing, err := u.listingsRepo.GetByID(txCtx, listingID)
		if err != nil {
			return err
		}

		if listing.DonorID != donorID {
			return model.ErrForbidden
		}

		history = newHistorySnapshot(listing, nil, model.HistoryStatusRemoved)
		if err := u.historyRepo.Create(txCtx, history); err != nil {
			return fmt.Errorf("履歴の記録失敗: %w", err)
		}

		// 残存リクエストを孤児にせず、取り下げと同時に一掃する
		if err := u.requestsRepo.DeleteByListing(txCtx, listing.ID); err != nil {
			return err
		}

		if err := u.listingsRepo.Delete(txCtx, listing.ID); err != nil {
			if errors.Is(err, model.ErrListingNotFound) {
				return model.ErrListingNoLongerAvailable
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return history, nil
}

// newHistorySnapshot 解決時点のリスティング内容を複製した履歴レコードを作る
func newHistorySnapshot(listing *model.Listing, receiverID *string, status model.HistoryStatus) *model.History {
	return &model.History{
		ID:          uuid.New().String(),
		DonorID:     listing.DonorID,
		ReceiverID:  receiverID,
		ListingID:   listing.ID,
		FoodType:    listing.FoodType,
		Quantity:    listing.Quantity,
		Description: listing.Description,
		Address:     listing.Address,
		Status:      status,
		CreatedAt:   time.Now(),
	}
}
