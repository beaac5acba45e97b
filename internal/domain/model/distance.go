package model

// DistanceCacheKey 距離キャッシュの完全一致キー（4つの座標値そのもの）
// 丸めや近似は行わないため、同一地点でも座標がビット単位で一致しなければヒットしない
type DistanceCacheKey struct {
	OriginLat float64
	OriginLng float64
	DestLat   float64
	DestLng   float64
}

// NewDistanceCacheKey 出発地・目的地の座標ペアからキーを作る
func NewDistanceCacheKey(origin, dest LatLng) DistanceCacheKey {
	return DistanceCacheKey{
		OriginLat: origin.Lat,
		OriginLng: origin.Lng,
		DestLat:   dest.Lat,
		DestLng:   dest.Lng,
	}
}

// DistanceCacheEntry 計算済み距離のキャッシュエントリ
// 2点間の距離は不変とみなし、一度書き込んだエントリは上書き・失効しない
type DistanceCacheEntry struct {
	OriginLat  float64 `json:"origin_lat" db:"origin_lat"`
	OriginLng  float64 `json:"origin_lng" db:"origin_lng"`
	DestLat    float64 `json:"dest_lat" db:"dest_lat"`
	DestLng    float64 `json:"dest_lng" db:"dest_lng"`
	DistanceKm float64 `json:"distance_km" db:"distance_km"`
}

// Key エントリのキャッシュキーを返す
func (e *DistanceCacheEntry) Key() DistanceCacheKey {
	return DistanceCacheKey{
		OriginLat: e.OriginLat,
		OriginLng: e.OriginLng,
		DestLat:   e.DestLat,
		DestLng:   e.DestLng,
	}
}
