package maps

import (
	"context"

	"FoodBridge-App/internal/domain/helper"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// HaversineDirectionsProvider は外部の地図サービスに接続できない環境向けの
// 決定的なローカル幾何計算による実装（球面上の大円距離）
type HaversineDirectionsProvider struct{}

// NewHaversineDirectionsProvider は新しいプロバイダを生成する
func NewHaversineDirectionsProvider() repository.DirectionsProvider {
	return &HaversineDirectionsProvider{}
}

// GetRouteDistanceMeters は2地点間の大円距離をメートル単位で返す
func (p *HaversineDirectionsProvider) GetRouteDistanceMeters(ctx context.Context, origin, dest model.LatLng) (float64, error) {
	return helper.HaversineDistance(origin, dest) * 1000, nil
}
