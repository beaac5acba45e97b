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

type PostgresListingsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresListingsRepository(client *database.PostgreSQLClient) repository.ListingsRepository {
	return &PostgresListingsRepository{
		client: client,
	}
}

func (r *PostgresListingsRepository) Create(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO listings (id, donor_id, food_type, quantity, description, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, query,
		listing.ID, listing.DonorID, listing.FoodType, listing.Quantity,
		listing.Description, listing.Address, listing.CreatedAt)
	if err != nil {
		return fmt.Errorf("リスティングの作成失敗: %w", err)
	}

	return nil
}

func (r *PostgresListingsRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	query := `SELECT id, donor_id, food_type, quantity, description, address, created_at FROM listings WHERE id = $1`

	row := executorFrom(ctx, r.client.DB).QueryRowContext(ctx, query, id)

	var listing model.Listing
	err := row.Scan(&listing.ID, &listing.DonorID, &listing.FoodType, &listing.Quantity,
		&listing.Description, &listing.Address, &listing.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrListingNotFound
		}
		return nil, fmt.Errorf("リスティングの取得失敗: %w", err)
	}

	return &listing, nil
}

func (r *PostgresListingsRepository) Update(ctx context.Context, listing *model.Listing) error {
	query := `
		UPDATE listings
		SET food_type = $2, quantity = $3, description = $4
		WHERE id = $1
	`

	result, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, query,
		listing.ID, listing.FoodType, listing.Quantity, listing.Description)
	if err != nil {
		return fmt.Errorf("リスティングの更新失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return model.ErrListingNotFound
	}

	return nil
}

// Delete リスティングを削除する。0行削除は並行操作で既に消えていることを意味する
func (r *PostgresListingsRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("リスティングの削除失敗: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の確認失敗: %w", err)
	}
	if affected == 0 {
		return model.ErrListingNotFound
	}

	return nil
}

func (r *PostgresListingsRepository) ListByDonor(ctx context.Context, donorID string) ([]model.Listing, error) {
	query := `
		SELECT id, donor_id, food_type, quantity, description, address, created_at
		FROM listings WHERE donor_id = $1 ORDER BY created_at ASC
	`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, donorID)
	if err != nil {
		return nil, fmt.Errorf("寄付者のリスティング取得失敗: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *PostgresListingsRepository) ListExcluding(ctx context.Context, excludedIDs []string) ([]model.Listing, error) {
	query := `
		SELECT id, donor_id, food_type, quantity, description, address, created_at
		FROM listings WHERE NOT (id = ANY($1)) ORDER BY created_at ASC
	`

	rows, err := executorFrom(ctx, r.client.DB).QueryContext(ctx, query, pq.Array(excludedIDs))
	if err != nil {
		return nil, fmt.Errorf("公開リスティングの取得失敗: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows *sql.Rows) ([]model.Listing, error) {
	var listings []model.Listing
	for rows.Next() {
		var listing model.Listing
		err := rows.Scan(&listing.ID, &listing.DonorID, &listing.FoodType, &listing.Quantity,
			&listing.Description, &listing.Address, &listing.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("リスティングのスキャンエラー: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	return listings, nil
}
