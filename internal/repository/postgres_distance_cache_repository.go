package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FoodBridge-App/internal/database"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// PostgresDistanceCacheRepository 座標4値の完全一致キーで引く距離キャッシュ
// キーの丸めは行わないため、保存済みユーザー座標がビット単位で一致した場合のみヒットする
type PostgresDistanceCacheRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresDistanceCacheRepository(client *database.PostgreSQLClient) repository.DistanceCacheRepository {
	return &PostgresDistanceCacheRepository{
		client: client,
	}
}

func (r *PostgresDistanceCacheRepository) Get(ctx context.Context, key model.DistanceCacheKey) (*float64, error) {
	query := `
		SELECT distance_km FROM distance_cache
		WHERE origin_lat = $1 AND origin_lng = $2 AND dest_lat = $3 AND dest_lng = $4
	`

	row := executorFrom(ctx, r.client.DB).QueryRowContext(ctx, query,
		key.OriginLat, key.OriginLng, key.DestLat, key.DestLng)

	var distanceKm float64
	err := row.Scan(&distanceKm)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("距離キャッシュの取得失敗: %w", err)
	}

	return &distanceKm, nil
}

// Put エントリを保存する。同一キーが既に存在する場合は何もしない
// （同一キーの距離は決定的なため、並行する2つのミスが競合しても結果は壊れない）
func (r *PostgresDistanceCacheRepository) Put(ctx context.Context, entry *model.DistanceCacheEntry) error {
	query := `
		INSERT INTO distance_cache (origin_lat, origin_lng, dest_lat, dest_lng, distance_km)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (origin_lat, origin_lng, dest_lat, dest_lng) DO NOTHING
	`

	_, err := executorFrom(ctx, r.client.DB).ExecContext(ctx, query,
		entry.OriginLat, entry.OriginLng, entry.DestLat, entry.DestLng, entry.DistanceKm)
	if err != nil {
		return fmt.Errorf("距離キャッシュの保存失敗: %w", err)
	}

	return nil
}
