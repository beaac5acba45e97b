package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"FoodBridge-App/internal/database"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// PostgresHistoryRepository 追記専用の履歴ストア。UPDATE/DELETEは発行しない
type PostgresHistoryRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresHistoryRepository(client *database.PostgreSQLClient) repository.HistoryRepository {
	return &PostgresHistoryRepository{
		client: client,
	}
}

func (r *PostgresHistoryRepository) Create(ctx context.Context, history *model.History) error {
	query := `
		INSERT INTO history (id, donor_id, receiver_id, listing_id, food_type, quantity, description, address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, query,
		history.ID, history.DonorID, history.ReceiverID, history.ListingID,
		history.FoodType, history.Quantity, history.Description, history.Address,
		history.Status, history.CreatedAt)
	if err != nil {
		return fmt.Errorf("履歴の作成失敗: %w", err)
	}

	return nil
}

func (r *PostgresHistoryRepository) ListByDonor(ctx context.Context, donorID string, statuses []model.HistoryStatus) ([]model.History, error) {
	query := `
		SELECT id, donor_id, receiver_id, listing_id, food_type, quantity, description, address, status, created_at
		FROM history WHERE donor_id = $1 AND status = ANY($2) ORDER BY created_at ASC
	`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, donorID, pq.Array(statusStrings(statuses)))
	if err != nil {
		return nil, fmt.Errorf("寄付者の履歴取得失敗: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

func (r *PostgresHistoryRepository) ListByReceiver(ctx context.Context, receiverID string, statuses []model.HistoryStatus) ([]model.History, error) {
	query := `
		SELECT id, donor_id, receiver_id, listing_id, food_type, quantity, description, address, status, created_at
		FROM history WHERE receiver_id = $1 AND status = ANY($2) ORDER BY created_at ASC
	`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, receiverID, pq.Array(statusStrings(statuses)))
	if err != nil {
		return nil, fmt.Errorf("受取団体の履歴取得失敗: %w", err)
	}
	defer rows.Close()

	return scanHistory(rows)
}

func (r *PostgresHistoryRepository) ListListingIDsByStatus(ctx context.Context, status model.HistoryStatus) ([]string, error) {
	query := `SELECT listing_id FROM history WHERE status = $1`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("履歴リスティングIDの取得失敗: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("リスティングIDのスキャンエラー: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return ids, nil
}

func statusStrings(statuses []model.HistoryStatus) []string {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}

func scanHistory(rows *sql.Rows) ([]model.History, error) {
	var entries []model.History
	for rows.Next() {
		var history model.History
		var receiverID sql.NullString
		err := rows.Scan(&history.ID, &history.DonorID, &receiverID, &history.ListingID,
			&history.FoodType, &history.Quantity, &history.Description, &history.Address,
			&history.Status, &history.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("履歴のスキャンエラー: %w", err)
		}

		if receiverID.Valid {
			history.ReceiverID = &receiverID.String
		}
		entries = append(entries, history)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return entries, nil
}
