package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

// DistanceCacheRepository 座標4値の完全一致キーで引く距離キャッシュ
type DistanceCacheRepository interface {
	// Get キャッシュミスの場合は(nil, nil)を返す
	Get(ctx context.Context, key model.DistanceCacheKey) (*float64, error)
	// Put 同一キーのエントリが既に存在する場合は上書きしない（再実行に対して冪等）
	Put(ctx context.Context, entry *model.DistanceCacheEntry) error
}
