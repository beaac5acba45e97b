package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"FoodBridge-App/internal/database"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

type PostgresPickupRequestsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPickupRequestsRepository(client *database.PostgreSQLClient) repository.PickupRequestsRepository {
	return &PostgresPickupRequestsRepository{
		client: client,
	}
}

// Create リクエストを登録する。同一(listing_id, receiver_id)が既に存在する場合は
// 一意制約により挿入されず、falseを返す（重複送信の冪等化）
// 存在チェックとINSERTの間にリスティングが取り下げられた場合は外部キー違反になるが、
// これも「存在しないリスティングへのリクエスト」と同じくfalseで吸収する
func (r *PostgresPickupRequestsRepository) Create(ctx context.Context, request *model.PickupRequest) (bool, error) {
	query := `
		INSERT INTO pickup_requests (id, listing_id, receiver_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (listing_id, receiver_id) DO NOTHING
	`

	result, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, query,
		request.ID, request.ListingID, request.ReceiverID, request.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return false, nil
		}
		return false, fmt.Errorf("引き取りリクエストの作成失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("作成結果の確認失敗: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresPickupRequestsRepository) GetByID(ctx context.Context, id string) (*model.PickupRequest, error) {
	query := `SELECT id, listing_id, receiver_id, created_at FROM pickup_requests WHERE id = $1`

	row := executorFrom(ctx, r.client.DB).QueryRowContext(ctx, query, id)

	var request model.PickupRequest
	err := row.Scan(&request.ID, &request.ListingID, &request.ReceiverID, &request.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("引き取りリクエストの取得失敗: %w", err)
	}

	return &request, nil
}

func (r *PostgresPickupRequestsRepository) ListByListing(ctx context.Context, listingID string) ([]model.PickupRequest, error) {
	query := `SELECT id, listing_id, receiver_id, created_at FROM pickup_requests WHERE listing_id = $1 ORDER BY created_at ASC`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("リスティングのリクエスト取得失敗: %w", err)
	}
	defer rows.Close()

	return scanPickupRequests(rows)
}

func (r *PostgresPickupRequestsRepository) ListByReceiver(ctx context.Context, receiverID string) ([]model.PickupRequest, error) {
	query := `SELECT id, listing_id, receiver_id, created_at FROM pickup_requests WHERE receiver_id = $1 ORDER BY created_at ASC`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, receiverID)
	if err != nil {
		return nil, fmt.Errorf("受取団体のリクエスト取得失敗: %w", err)
	}
	defer rows.Close()

	return scanPickupRequests(rows)
}

// Delete リクエストを削除する。0行削除は別の操作が先に解決済みであることを意味する
func (r *PostgresPickupRequestsRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, `DELETE FROM pickup_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("引き取りリクエストの削除失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return model.ErrRequestNotFound
	}

	return nil
}

func (r *PostgresPickupRequestsRepository) DeleteByListing(ctx context.Context, listingID string) error {
	_, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, `DELETE FROM pickup_requests WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("リスティングのリクエスト一掃失敗: %w", err)
	}

	return nil
}

func scanPickupRequests(rows *sql.Rows) ([]model.PickupRequest, error) {
	var requests []model.PickupRequest
	for rows.Next() {
		var request model.PickupRequest
		err := rows.Scan(&request.ID, &request.ListingID, &request.ReceiverID, &request.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("リクエストのスキャンエラー: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return requests, nil
}
