package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FoodBridge-App/internal/domain/model"
)

// PostgRESTが返す行JSONからmodel.Userへの変換を検証する
// usersテーブルのlocationカラムはGeoJSON POINTを保持するJSONB
func TestUserDBMapping(t *testing.T) {
	t.Run("locationのGeoJSON POINTが座標に変換される", func(t *testing.T) {
		payload := `[{
			"id": "donor-1",
			"name": "パン工房",
			"role": "donor",
			"address": "京都市中京区",
			"location": {"type": "Point", "coordinates": [135.7681, 35.0116]}
		}]`

		var rows []userDB
		require.NoError(t, json.Unmarshal([]byte(payload), &rows))
		require.Len(t, rows, 1)

		user, err := rows[0].toUser()
		require.NoError(t, err)

		assert.Equal(t, model.UserRoleDonor, user.Role)
		assert.Equal(t, "京都市中京区", user.Address)

		// GeoJSONは[lng, lat]の順。取り違えると距離計算がすべて狂う
		require.NotNil(t, user.Location)
		assert.Equal(t, 35.0116, user.Location.Latitude)
		assert.Equal(t, 135.7681, user.Location.Longitude)

		latlng, ok := user.ToLatLng()
		require.True(t, ok, "座標ありのユーザーは距離解決の対象になる")
		assert.Equal(t, 35.0116, latlng.Lat)
		assert.Equal(t, 135.7681, latlng.Lng)
	})

	t.Run("locationがnullのユーザーは座標なしとして扱う", func(t *testing.T) {
		payload := `[{"id": "ngo-1", "name": "フードバンク", "role": "receiver", "address": "京都市左京区", "location": null}]`

		var rows []userDB
		require.NoError(t, json.Unmarshal([]byte(payload), &rows))
		require.Len(t, rows, 1)

		user, err := rows[0].toUser()
		require.NoError(t, err)

		assert.Nil(t, user.Location)
		_, ok := user.ToLatLng()
		assert.False(t, ok)
	})

	t.Run("不明なロールはエラー", func(t *testing.T) {
		row := userDB{ID: "u-1", Name: "誰か", Role: "admin", Address: ""}

		_, err := row.toUser()
		assert.Error(t, err)
	})
}

func TestGeoPointToLocation(t *testing.T) {
	t.Run("座標が欠けたPOINTはnil", func(t *testing.T) {
		assert.Nil(t, GeoPointToLocation(nil))
		assert.Nil(t, GeoPointToLocation(&GeoPoint{Type: "Point", Coordinates: []float64{135.7}}))
	})
}
