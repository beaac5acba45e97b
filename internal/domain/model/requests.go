package model

import "time"

// PickupRequest 受取団体によるリスティングへの引き取りリクエスト
// 同一(listing, receiver)ペアに対して同時に存在できるのは最大1件
type PickupRequest struct {
	ID         string    `json:"id" db:"id"`
	ListingID  string    `json:"listing_id" db:"listing_id"`
	ReceiverID string    `json:"receiver_id" db:"receiver_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type SubmitRequestRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
