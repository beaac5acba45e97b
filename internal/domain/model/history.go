package model

import "time"

// HistoryStatus リスティングの最終処理結果
type HistoryStatus string

const (
	HistoryStatusApproved HistoryStatus = "approved"
	HistoryStatusRejected HistoryStatus = "rejected"
	HistoryStatusRemoved  HistoryStatus = "removed"
)

// IsResolution リクエスト解決（承認・却下）の結果かどうか
func (s HistoryStatus) IsResolution() bool {
	return s == HistoryStatusApproved || s == HistoryStatusRejected
}

// History リスティングの最終処理を記録する追記専用レコード
// 食品情報はリスティング削除後も参照できるよう解決時点のスナップショットを保持する
type History struct {
	ID          string        `json:"id" db:"id"`
	DonorID     string        `json:"donor_id" db:"donor_id"`
	ReceiverID  *string       `json:"receiver_id" db:"receiver_id"` // 取り下げの場合はnil
	ListingID   string        `json:"listing_id" db:"listing_id"`
	FoodType    string        `json:"food_type" db:"food_type"`
	Quantity    string        `json:"quantity" db:"quantity"`
	Description string        `json:"description" db:"description"`
	Address     string        `json:"address" db:"address"`
	Status      HistoryStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
