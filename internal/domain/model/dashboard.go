package model

// RankedPickupRequest 距離情報付きの引き取りリクエスト（寄付者向けビュー）
// DistanceKmは距離未解決（座標欠損・外部サービス不達）の場合nil
type RankedPickupRequest struct {
	Request    *PickupRequest `json:"request"`
	Listing    *Listing       `json:"listing"`
	Receiver   *User          `json:"receiver"`
	DistanceKm *float64       `json:"distance_km"`
}

// RankedListing 距離情報付きの公開リスティング（受取団体向けビュー）
type RankedListing struct {
	Listing    *Listing `json:"listing"`
	Donor      *User    `json:"donor"`
	DistanceKm *float64 `json:"distance_km"`
}

// HistoryEntry 相手方ユーザーと距離を付与した履歴表示用エントリ
type HistoryEntry struct {
	History     *History `json:"history"`
	Counterpart *User    `json:"counterpart"` // 取り下げ履歴の場合nil
	DistanceKm  *float64 `json:"distance_km"`
}

type DonorDashboardResponse struct {
	Listings       []Listing             `json:"listings"`
	PickupRequests []RankedPickupRequest `json:"pickup_requests"`
	History        []HistoryEntry        `json:"history"`
}

type ReceiverDashboardResponse struct {
	AvailableListings []RankedListing       `json:"available_listings"`
	PendingRequests   []RankedPickupRequest `json:"pending_requests"`
	History           []HistoryEntry        `json:"history"`
}
