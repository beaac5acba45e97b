package model

import "time"

// Listing 公開中の食品寄付リスティング
// Addressは作成時点の寄付者住所のコピーであり、以後のユーザー情報変更に追随しない
type Listing struct {
	ID          string    `json:"id" db:"id"`
	DonorID     string    `json:"donor_id" db:"donor_id"`
	FoodType    string    `json:"food_type" db:"food_type"`
	Quantity    string    `json:"quantity" db:"quantity"`
	Description string    `json:"description" db:"description"`
	Address     string    `json:"address" db:"address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateListingRequest struct {
	DonorID     string `json:"donor_id" validate:"required"`
	FoodType    string `json:"food_type" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Description string `json:"description"`
}

type UpdateListingRequest struct {
	EditorID    string `json:"editor_id" validate:"required"`
	FoodType    string `json:"food_type" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	Description string `json:"description"`
}
