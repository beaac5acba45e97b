package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

// DirectionsProvider 2地点間の経路距離を取得する
// 外部API実装とローカル幾何計算実装は同一契約の下で差し替え可能であり、
// 1つのキャッシュ内で混在させてはならない
type DirectionsProvider interface {
	GetRouteDistanceMeters(ctx context.Context, origin, dest model.LatLng) (float64, error)
}
