package helper_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"FoodBridge-App/internal/domain/helper"
	"FoodBridge-App/internal/domain/model"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("東京-大阪間はおよそ400km", func(t *testing.T) {
		tokyo := model.LatLng{Lat: 35.6812, Lng: 139.7671}
		osaka := model.LatLng{Lat: 34.7025, Lng: 135.4959}

		got := helper.HaversineDistance(tokyo, osaka)
		assert.InDelta(t, 400.0, got, 10.0)
	})

	t.Run("同一地点は0km", func(t *testing.T) {
		p := model.LatLng{Lat: 35.0116, Lng: 135.7681}
		assert.Equal(t, 0.0, helper.HaversineDistance(p, p))
	})

	t.Run("引数の順序に依存しない", func(t *testing.T) {
		p1 := model.LatLng{Lat: 35.0116, Lng: 135.7681}
		p2 := model.LatLng{Lat: 34.9858, Lng: 135.7588}
		assert.Equal(t, helper.HaversineDistance(p1, p2), helper.HaversineDistance(p2, p1))
	})
}

func TestIsValidLatLng(t *testing.T) {
	tests := []struct {
		name  string
		point model.LatLng
		want  bool
	}{
		{"京都市内の座標", model.LatLng{Lat: 35.0116, Lng: 135.7681}, true},
		{"境界値(北極)", model.LatLng{Lat: 90, Lng: 0}, true},
		{"境界値(日付変更線)", model.LatLng{Lat: 0, Lng: -180}, true},
		{"緯度が範囲外", model.LatLng{Lat: 90.0001, Lng: 135.0}, false},
		{"経度が範囲外", model.LatLng{Lat: 35.0, Lng: 180.5}, false},
		{"NaNの緯度", model.LatLng{Lat: math.NaN(), Lng: 135.0}, false},
		{"無限大の経度", model.LatLng{Lat: 35.0, Lng: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helper.IsValidLatLng(tt.point))
		})
	}
}
