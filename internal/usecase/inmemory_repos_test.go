package usecase_test

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

// テスト用のインメモリ実装。単一ゴルーチンでの利用を前提とし、
// 挿入順を保持してPostgreSQL実装のORDER BY created_atを模倣する
type memDB struct {
	users        map[string]*model.User
	listings     map[string]*model.Listing
	listingOrder []string
	requests     map[string]*model.PickupRequest
	requestOrder []string
	history      []*model.History
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]*model.User),
		listings: make(map[string]*model.Listing),
		requests: make(map[string]*model.PickupRequest),
	}
}

func (db *memDB) addUser(id, name string, role model.UserRole, address string, location *model.Location) {
	db.users[id] = &model.User{
		ID:       id,
		Name:     name,
		Role:     role,
		Address:  address,
		Location: location,
	}
}

// memTransactor ロールバックは模倣しない（正常系・中断系の順序検証用）
type memTransactor struct{}

func (t *memTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUsersRepo struct{ db *memDB }

func (r *memUsersRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := r.db.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

type memListingsRepo struct{ db *memDB }

func (r *memListingsRepo) Create(ctx context.Context, listing *model.Listing) error {
	copied := *listing
	r.db.listings[listing.ID] = &copied
	r.db.listingOrder = append(r.db.listingOrder, listing.ID)
	return nil
}

func (r *memListingsRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	listing, ok := r.db.listings[id]
	if !ok {
		return nil, model.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *memListingsRepo) Update(ctx context.Context, listing *model.Listing) error {
	if _, ok := r.db.listings[listing.ID]; !ok {
		return model.ErrListingNotFound
	}
	copied := *listing
	r.db.listings[listing.ID] = &copied
	return nil
}

func (r *memListingsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.db.listings[id]; !ok {
		return model.ErrListingNotFound
	}
	delete(r.db.listings, id)
	return nil
}

func (r *memListingsRepo) ListByDonor(ctx context.Context, donorID string) ([]model.Listing, error) {
	var listings []model.Listing
	for _, id := range r.db.listingOrder {
		listing, ok := r.db.listings[id]
		if ok && listing.DonorID == donorID {
			listings = append(listings, *listing)
		}
	}
	return listings, nil
}

func (r *memListingsRepo) ListExcluding(ctx context.Context, excludedIDs []string) ([]model.Listing, error) {
	excluded := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	var listings []model.Listing
	for _, id := range r.db.listingOrder {
		listing, ok := r.db.listings[id]
		if !ok {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		listings = append(listings, *listing)
	}
	return listings, nil
}

type memRequestsRepo struct{ db *memDB }

func (r *memRequestsRepo) Create(ctx context.Context, request *model.PickupRequest) (bool, error) {
	// 対象リスティングの消失はPostgreSQL実装では外部キー違反として吸収される
	if _, ok := r.db.listings[request.ListingID]; !ok {
		return false, nil
	}
	for _, existing := range r.db.requests {
		if existing.ListingID == request.ListingID && existing.ReceiverID == request.ReceiverID {
			return false, nil
		}
	}
	copied := *request
	r.db.requests[request.ID] = &copied
	r.db.requestOrder = append(r.db.requestOrder, request.ID)
	return true, nil
}

func (r *memRequestsRepo) GetByID(ctx context.Context, id string) (*model.PickupRequest, error) {
	request, ok := r.db.requests[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *memRequestsRepo) ListByListing(ctx context.Context, listingID string) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	for _, id := range r.db.requestOrder {
		request, ok := r.db.requests[id]
		if ok && request.ListingID == listingID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *memRequestsRepo) ListByReceiver(ctx context.Context, receiverID string) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	for _, id := range r.db.requestOrder {
		request, ok := r.db.requests[id]
		if ok && request.ReceiverID == receiverID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *memRequestsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.db.requests[id]; !ok {
		return model.ErrRequestNotFound
	}
	delete(r.db.requests, id)
	return nil
}

func (r *memRequestsRepo) DeleteByListing(ctx context.Context, listingID string) error {
	for id, request := range r.db.requests {
		if request.ListingID == listingID {
			delete(r.db.requests, id)
		}
	}
	return nil
}

// vanishingListingRequestsRepo Create直前に対象リスティングが並行して
// 取り下げられる競合を模倣するデコレータ
type vanishingListingRequestsRepo struct {
	db    *memDB
	inner *memRequestsRepo
}

func (r *vanishingListingRequestsRepo) Create(ctx context.Context, request *model.PickupRequest) (bool, error) {
	delete(r.db.listings, request.ListingID)
	return r.inner.Create(ctx, request)
}

func (r *vanishingListingRequestsRepo) GetByID(ctx context.Context, id string) (*model.PickupRequest, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *vanishingListingRequestsRepo) ListByListing(ctx context.Context, listingID string) ([]model.PickupRequest, error) {
	return r.inner.ListByListing(ctx, listingID)
}

func (r *vanishingListingRequestsRepo) ListByReceiver(ctx context.Context, receiverID string) ([]model.PickupRequest, error) {
	return r.inner.ListByReceiver(ctx, receiverID)
}

func (r *vanishingListingRequestsRepo) Delete(ctx context.Context, id string) error {
	return r.inner.Delete(ctx, id)
}

func (r *vanishingListingRequestsRepo) DeleteByListing(ctx context.Context, listingID string) error {
	return r.inner.DeleteByListing(ctx, listingID)
}

type memHistoryRepo struct{ db *memDB }

func (r *memHistoryRepo) Create(ctx context.Context, history *model.History) error {
	copied := *history
	r.db.history = append(r.db.history, &copied)
	return nil
}

func (r *memHistoryRepo) ListByDonor(ctx context.Context, donorID string, statuses []model.HistoryStatus) ([]model.History, error) {
	var entries []model.History
	for _, h := range r.db.history {
		if h.DonorID == donorID && containsStatus(statuses, h.Status) {
			entries = append(entries, *h)
		}
	}
	return entries, nil
}

func (r *memHistoryRepo) ListByReceiver(ctx context.Context, receiverID string, statuses []model.HistoryStatus) ([]model.History, error) {
	var entries []model.History
	for _, h := range r.db.history {
		if h.ReceiverID != nil && *h.ReceiverID == receiverID && containsStatus(statuses, h.Status) {
			entries = append(entries, *h)
		}
	}
	return entries, nil
}

func (r *memHistoryRepo) ListListingIDsByStatus(ctx context.Context, status model.HistoryStatus) ([]string, error) {
	var ids []string
	for _, h := range r.db.history {
		if h.Status == status {
			ids = append(ids, h.ListingID)
		}
	}
	return ids, nil
}

func containsStatus(statuses []model.HistoryStatus, status model.HistoryStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
