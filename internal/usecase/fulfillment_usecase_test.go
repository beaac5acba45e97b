package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/usecase"
)

type fulfillmentEnv struct {
	db          *memDB
	listings    usecase.ListingUseCase
	fulfillment usecase.FulfillmentUseCase
}

func newFulfillmentEnv() *fulfillmentEnv {
	db := newMemDB()
	usersRepo := &memUsersRepo{db: db}
	listingsRepo := &memListingsRepo{db: db}
	requestsRepo := &memRequestsRepo{db: db}
	historyRepo := &memHistoryRepo{db: db}

	return &fulfillmentEnv{
		db:          db,
		listings:    usecase.NewListingUseCase(usersRepo, listingsRepo),
		fulfillment: usecase.NewFulfillmentUseCase(usersRepo, listingsRepo, requestsRepo, historyRepo, &memTransactor{}),
	}
}

func (e *fulfillmentEnv) createListing(t *testing.T, donorID, foodType, quantity string) *model.Listing {
	t.Helper()
	listing, err := e.listings.CreateListing(context.Background(), &model.CreateListingRequest{
		DonorID:  donorID,
		FoodType: foodType,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return listing
}

func TestSubmitRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("重複送信は2件目を作成しない", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		first, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)
		assert.Nil(t, second, "重複送信はエラーではなく何もしない")
		assert.Len(t, env.db.requests, 1)
	})

	t.Run("存在しないリスティングへの送信は黙って無視される", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)

		request, err := env.fulfillment.SubmitRequest(ctx, "missing-listing", "ngo-1")
		require.NoError(t, err)
		assert.Nil(t, request)
		assert.Empty(t, env.db.requests)
	})

	t.Run("チェック直後にリスティングが取り下げられても黙って無視される", func(t *testing.T) {
		db := newMemDB()
		usersRepo := &memUsersRepo{db: db}
		listingsRepo := &memListingsRepo{db: db}
		requestsRepo := &vanishingListingRequestsRepo{db: db, inner: &memRequestsRepo{db: db}}
		historyRepo := &memHistoryRepo{db: db}
		listings := usecase.NewListingUseCase(usersRepo, listingsRepo)
		fulfillment := usecase.NewFulfillmentUseCase(usersRepo, listingsRepo, requestsRepo, historyRepo, &memTransactor{})

		db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing, err := listings.CreateListing(ctx, &model.CreateListingRequest{
			DonorID:  "donor-1",
			FoodType: "パン",
			Quantity: "10個",
		})
		require.NoError(t, err)

		// 存在チェックは通るがINSERT時点では消えている、という競合でも500にならない
		request, err := fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)
		assert.Nil(t, request)
		assert.Empty(t, db.requests)
	})

	t.Run("寄付者ロールからの送信は拒否される", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		_, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "donor-1")
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestResolveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("承認はリスティングを終端させ兄弟リクエストを一掃する", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		env.db.addUser("ngo-2", "こども食堂", model.UserRoleReceiver, "京都市北区", nil)
		listing := env.createListing(t, "donor-1", "bread", "10")

		req1, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)
		req2, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-2")
		require.NoError(t, err)

		history, err := env.fulfillment.ResolveRequest(ctx, req1.ID, model.HistoryStatusApproved)
		require.NoError(t, err)
		require.NotNil(t, history)

		assert.Equal(t, model.HistoryStatusApproved, history.Status)
		assert.Equal(t, listing.ID, history.ListingID)
		assert.Equal(t, "donor-1", history.DonorID)
		require.NotNil(t, history.ReceiverID)
		assert.Equal(t, "ngo-1", *history.ReceiverID)
		assert.Equal(t, "bread", history.FoodType)
		assert.Equal(t, "10", history.Quantity)

		// リスティングは公開セットから消える
		_, err = env.listings.GetListing(ctx, listing.ID)
		assert.ErrorIs(t, err, model.ErrListingNotFound)

		// 孤児になるはずだった兄弟リクエストは一掃済みで、解決試行は失敗する
		assert.Empty(t, env.db.requests)
		_, err = env.fulfillment.ResolveRequest(ctx, req2.ID, model.HistoryStatusApproved)
		assert.ErrorIs(t, err, model.ErrRequestNotFound)

		assert.Len(t, env.db.history, 1, "履歴はちょうど1件")
	})

	t.Run("却下はリスティングを公開状態のまま残す", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "野菜", "5kg")

		req, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)

		history, err := env.fulfillment.ResolveRequest(ctx, req.ID, model.HistoryStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, model.HistoryStatusRejected, history.Status)

		// リスティングは残り、さらにリクエストを受け付けられる
		_, err = env.listings.GetListing(ctx, listing.ID)
		require.NoError(t, err)

		again, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)
		assert.NotNil(t, again, "却下後は同じ受取団体が再リクエストできる")
	})

	t.Run("同一リクエストの再解決は成功しない", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		req, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)

		_, err = env.fulfillment.ResolveRequest(ctx, req.ID, model.HistoryStatusApproved)
		require.NoError(t, err)

		_, err = env.fulfillment.ResolveRequest(ctx, req.ID, model.HistoryStatusApproved)
		assert.ErrorIs(t, err, model.ErrRequestNotFound)
		assert.Len(t, env.db.history, 1, "履歴が二重に追記されてはならない")
	})

	t.Run("リスティングが先に消えていた場合はStaleとして通知する", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		req, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)

		// 並行する取り下げ・承認を模倣してリスティングだけ先に消す
		listingsRepo := &memListingsRepo{db: env.db}
		require.NoError(t, listingsRepo.Delete(ctx, listing.ID))

		_, err = env.fulfillment.ResolveRequest(ctx, req.ID, model.HistoryStatusApproved)
		assert.ErrorIs(t, err, model.ErrListingNoLongerAvailable)
	})

	t.Run("不正な決定は状態を変更せず拒否される", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		req, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)

		_, err = env.fulfillment.ResolveRequest(ctx, req.ID, model.HistoryStatusRemoved)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Empty(t, env.db.history)
		assert.Len(t, env.db.requests, 1)
	})
}

func TestWithdrawListing(t *testing.T) {
	ctx := context.Background()

	t.Run("所有者は残存リクエストの有無に関わらず取り下げられる", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("ngo-1", "フードバンク", model.UserRoleReceiver, "京都市左京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		_, err := env.fulfillment.SubmitRequest(ctx, listing.ID, "ngo-1")
		require.NoError(t, err)

		history, err := env.fulfillment.WithdrawListing(ctx, listing.ID, "donor-1")
		require.NoError(t, err)

		assert.Equal(t, model.HistoryStatusRemoved, history.Status)
		assert.Nil(t, history.ReceiverID, "取り下げ履歴に受取団体はいない")
		assert.Equal(t, listing.ID, history.ListingID)

		_, err = env.listings.GetListing(ctx, listing.ID)
		assert.ErrorIs(t, err, model.ErrListingNotFound)
		assert.Empty(t, env.db.requests, "残存リクエストも一掃される")
	})

	t.Run("所有者以外の取り下げは拒否される", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("donor-2", "八百屋", model.UserRoleDonor, "京都市右京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		_, err := env.fulfillment.WithdrawListing(ctx, listing.ID, "donor-2")
		assert.ErrorIs(t, err, model.ErrForbidden)

		_, err = env.listings.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		assert.Empty(t, env.db.history)
	})
}

func TestUpdateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("所有者のみが編集できる", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)
		env.db.addUser("donor-2", "八百屋", model.UserRoleDonor, "京都市右京区", nil)
		listing := env.createListing(t, "donor-1", "パン", "10個")

		updated, err := env.listings.UpdateListing(ctx, listing.ID, &model.UpdateListingRequest{
			EditorID: "donor-1",
			FoodType: "クロワッサン",
			Quantity: "8個",
		})
		require.NoError(t, err)
		assert.Equal(t, "クロワッサン", updated.FoodType)

		_, err = env.listings.UpdateListing(ctx, listing.ID, &model.UpdateListingRequest{
			EditorID: "donor-2",
			FoodType: "野菜",
			Quantity: "1kg",
		})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("住所は作成時点の寄付者住所のコピーになる", func(t *testing.T) {
		env := newFulfillmentEnv()
		env.db.addUser("donor-1", "パン工房", model.UserRoleDonor, "京都市中京区", nil)

		listing := env.createListing(t, "donor-1", "パン", "10個")
		assert.Equal(t, "京都市中京区", listing.Address)

		// 作成後にユーザーの住所が変わってもリスティングには反映されない
		env.db.users["donor-1"].Address = "大阪市北区"
		got, err := env.listings.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, "京都市中京区", got.Address)
	})
}
