package repository

import (
	"context"

	"FoodBridge-App/internal/domain/model"
)

// UsersRepository ユーザー情報の参照（本コアからは読み取り専用）
type UsersRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}
