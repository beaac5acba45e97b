package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"FoodBridge-App/internal/database"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// SupabaseUsersRepository PostgREST経由でユーザー情報を参照するリポジトリ
// 登録・認証は周辺システムの責務であり、本コアからは読み取り専用
type SupabaseUsersRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseUsersRepository(client *database.SupabaseClient) repository.UsersRepository {
	return &SupabaseUsersRepository{
		client: client,
	}
}

// userDB users テーブルの行表現（位置情報はGeoJSON POINT）
type userDB struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Address  string    `json:"address"`
	Location *GeoPoint `json:"location"`
}

func (u *userDB) toUser() (*model.User, error) {
	role := model.UserRole(u.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("不明なユーザー種別です: %s", u.Role)
	}

	return &model.User{
		ID:       u.ID,
		Name:     u.Name,
		Role:     role,
		Address:  u.Address,
		Location: GeoPointToLocation(u.Location),
	}, nil
}

func (r *SupabaseUsersRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	data, count, err := r.client.GetClient().From("users").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("ユーザーデータの取得失敗: %w", err)
	}
	_ = count

	var users []userDB
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return nil, fmt.Errorf("ユーザーデータのJSONアンマーシャル失敗: %w", err)
	}

	if len(users) == 0 {
		return nil, model.ErrUserNotFound
	}

	return users[0].toUser()
}
