package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
	"FoodBridge-App/internal/domain/service"
)

// MatchingUseCase 距離順に並べたマッチング候補ビューを提供する
// いずれのビューも読み取り専用の射影であり、台帳の状態を変更しない
// （距離キャッシュへの書き込みを除く）
type MatchingUseCase interface {
	// RankRequestsForDonor 寄付者の公開リスティングに対する全リクエストを距離昇順で返す
	RankRequestsForDonor(ctx context.Context, donorID string) ([]model.RankedPickupRequest, error)

	// RankListingsForReceiver 受取団体が引き取り可能なリスティングを距離昇順で返す
	// 既にリクエスト済みのもの、承認済み履歴のあるものは除外される
	RankListingsForReceiver(ctx context.Context, receiverID string) ([]model.RankedListing, error)

	// GetDonorDashboard 寄付者ダッシュボード（自分のリスティング・リクエスト・履歴）
	GetDonorDashboard(ctx context.Context, donorID string) (*model.DonorDashboardResponse, error)

	// GetReceiverDashboard 受取団体ダッシュボード（候補リスティング・保留中リクエスト・履歴）
	GetReceiverDashboard(ctx context.Context, receiverID string) (*model.ReceiverDashboardResponse, error)
}

// matchingUseCaseImpl MatchingUseCaseの実装
type matchingUseCaseImpl struct {
	usersRepo    repository.UsersRepository
	listingsRepo repository.ListingsRepository
	requestsRepo repository.PickupRequestsRepository
	historyRepo  repository.HistoryRepository
	resolver     service.DistanceResolver
}

// NewMatchingUseCase MatchingUseCaseの新しいインスタンスを作成
func NewMatchingUseCase(
	usersRepo repository.UsersRepository,
	listingsRepo repository.ListingsRepository,
	requestsRepo repository.PickupRequestsRepository,
	historyRepo repository.HistoryRepository,
	resolver service.DistanceResolver,
) MatchingUseCase {
	return &matchingUseCaseImpl{
		usersRepo:    usersRepo,
		listingsRepo: listingsRepo,
		requestsRepo: requestsRepo,
		historyRepo:  historyRepo,
		resolver:     resolver,
	}
}

func (u *matchingUseCaseImpl) RankRequestsForDonor(ctx context.Context, donorID string) ([]model.RankedPickupRequest, error) {
	donor, err := u.usersRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}

	listings, err := u.listingsRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("リスティングの取得失敗: %w", err)
	}

	var entries []model.RankedPickupRequest
	for i := range listings {
		listing := listings[i]
		requests, err := u.requestsRepo.ListByListing(ctx, listing.ID)
		if err != nil {
			return nil, fmt.Errorf("リクエストの取得失敗: %w", err)
		}

		for j := range requests {
			request := requests[j]
			receiver, err := u.lookupUser(ctx, request.ReceiverID)
			if err != nil {
				return nil, err
			}

			entries = append(entries, model.RankedPickupRequest{
				Request:    &request,
				Listing:    &listing,
				Receiver:   receiver,
				DistanceKm: u.distanceBetween(ctx, donor, receiver),
			})
		}
	}

	// 距離昇順。距離不明のエントリは必ず末尾に置き、相対順は元のまま保つ
	sort.SliceStable(entries, func(i, j int) bool {
		return lessByDistance(entries[i].DistanceKm, entries[j].DistanceKm)
	})

	return entries, nil
}

func (u *matchingUseCaseImpl) RankListingsForReceiver(ctx context.Context, receiverID string) ([]model.RankedListing, error) {
	receiver, err := u.usersRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	excludedIDs, err := u.excludedListingIDs(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	listings, err := u.listingsRepo.ListExcluding(ctx, excludedIDs)
	if err != nil {
		return nil, fmt.Errorf("公開リスティングの取得失敗: %w", err)
	}

	var entries []model.RankedListing
	for i := range listings {
		listing := listings[i]
		donor, err := u.lookupUser(ctx, listing.DonorID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.RankedListing{
			Listing:    &listing,
			Donor:      donor,
			DistanceKm: u.distanceBetween(ctx, receiver, donor),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessByDistance(entries[i].DistanceKm, entries[j].DistanceKm)
	})

	return entries, nil
}

func (u *matchingUseCaseImpl) GetDonorDashboard(ctx context.Context, donorID string) (*model.DonorDashboardResponse, error) {
	donor, err := u.usersRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}

	listings, err := u.listingsRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("リスティングの取得失敗: %w", err)
	}

	requests, err := u.RankRequestsForDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	historyRows, err := u.historyRepo.ListByDonor(ctx, donorID,
		[]model.HistoryStatus{model.HistoryStatusApproved, model.HistoryStatusRemoved})
	if err != nil {
		return nil, fmt.Errorf("履歴の取得失敗: %w", err)
	}

	history, err := u.annotateHistory(ctx, donor, historyRows, func(h *model.History) *string {
		return h.ReceiverID
	})
	if err != nil {
		return nil, err
	}

	return &model.DonorDashboardResponse{
		Listings:       listings,
		PickupRequests: requests,
		History:        history,
	}, nil
}

func (u *matchingUseCaseImpl) GetReceiverDashboard(ctx context.Context, receiverID string) (*model.ReceiverDashboardResponse, error) {
	receiver, err := u.usersRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	available, err := u.RankListingsForReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	pending, err := u.rankPendingRequests(ctx, receiver)
	if err != nil {
		return nil, err
	}

	historyRows, err := u.historyRepo.ListByReceiver(ctx, receiverID,
		[]model.HistoryStatus{model.HistoryStatusApproved, model.HistoryStatusRejected})
	if err != nil {
		return nil, fmt.Errorf("履歴の取得失敗: %w", err)
	}

	history, err := u.annotateHistory(ctx, receiver, historyRows, func(h *model.History) *string {
		return &h.DonorID
	})
	if err != nil {
		return nil, err
	}

	return &model.ReceiverDashboardResponse{
		AvailableListings: available,
		PendingRequests:   pending,
		History:           history,
	}, nil
}

// rankPendingRequests 受取団体自身の保留中リクエストを距離昇順で返す
func (u *matchingUseCaseImpl) rankPendingRequests(ctx context.Context, receiver *model.User) ([]model.RankedPickupRequest, error) {
	requests, err := u.requestsRepo.ListByReceiver(ctx, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("リクエストの取得失敗: %w", err)
	}

	var entries []model.RankedPickupRequest
	for i := range requests {
		request := requests[i]
		listing, err := u.listingsRepo.GetByID(ctx, request.ListingID)
		if err != nil {
			if errors.Is(err, model.ErrListingNotFound) {
				// リスティングが並行操作で消えた直後の残存リクエストは表示しない
				continue
			}
			return nil, err
		}

		donor, err := u.lookupUser(ctx, listing.DonorID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.RankedPickupRequest{
			Request:    &request,
			Listing:    listing,
			Receiver:   receiver,
			DistanceKm: u.distanceBetween(ctx, receiver, donor),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessByDistance(entries[i].DistanceKm, entries[j].DistanceKm)
	})

	return entries, nil
}

// excludedListingIDs 受取団体のビューから除外するリスティングID
// （自身がリクエスト済みのもの + 承認済み履歴のあるもの）
func (u *matchingUseCaseImpl) excludedListingIDs(ctx context.Context, receiverID string) ([]string, error) {
	requested, err := u.requestsRepo.ListByReceiver(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("リクエストの取得失敗: %w", err)
	}

	approvedIDs, err := u.historyRepo.ListListingIDsByStatus(ctx, model.HistoryStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("承認済み履歴の取得失敗: %w", err)
	}

	ids := make([]string, 0, len(requested)+len(approvedIDs))
	for _, r := range requested {
		ids = append(ids, r.ListingID)
	}
	ids = append(ids, approvedIDs...)

	return ids, nil
}

// annotateHistory 履歴レコードに相手方ユーザーと距離を付与する
func (u *matchingUseCaseImpl) annotateHistory(ctx context.Context, viewer *model.User, rows []model.History, counterpartID func(*model.History) *string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	for i := range rows {
		history := rows[i]

		var counterpart *model.User
		if id := counterpartID(&history); id != nil {
			user, err := u.lookupUser(ctx, *id)
			if err != nil {
				return nil, err
			}
			counterpart = user
		}

		entries = append(entries, model.HistoryEntry{
			History:     &history,
			Counterpart: counterpart,
			DistanceKm:  u.distanceBetween(ctx, viewer, counterpart),
		})
	}

	return entries, nil
}

// lookupUser ユーザーを参照する。既に削除済みのユーザーはnilとして扱う
func (u *matchingUseCaseImpl) lookupUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.usersRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// distanceBetween 両者の座標が揃っている場合のみ距離を解決する
func (u *matchingUseCaseImpl) distanceBetween(ctx context.Context, from, to *model.User) *float64 {
	origin, ok := from.ToLatLng()
	if !ok {
		return nil
	}
	dest, ok := to.ToLatLng()
	if !ok {
		return nil
	}
	return u.resolver.ResolveDistanceKm(ctx, origin, dest)
}

// lessByDistance 距離不明(nil)のエントリを常に距離ありの後ろへ並べる
func lessByDistance(di, dj *float64) bool {
	if di == nil {
		return false
	}
	if dj == nil {
		return true
	}
	return *di < *dj
}
