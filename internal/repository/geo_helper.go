package repository

import (
	"github.com/paulmach/orb"

	"FoodBridge-App/internal/domain/model"
)

// GeoPoint usersテーブルのlocationカラムが保持するGeoJSON POINT表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoPointToLocation GeoJSON POINTをmodel.Locationに変換
// ユーザー情報は本コアから読み取り専用のため、逆方向の変換は持たない
func GeoPointToLocation(geoPoint *GeoPoint) *model.Location {
	if geoPoint == nil || len(geoPoint.Coordinates) < 2 {
		return nil
	}

	// GeoJSONは [lng, lat] の順
	point := orb.Point{geoPoint.Coordinates[0], geoPoint.Coordinates[1]}

	return &model.Location{
		Latitude:  point.Lat(),
		Longitude: point.Lon(),
	}
}
