package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// FirestoreDistanceCacheRepository Firestoreを距離キャッシュの保存先とする代替実装
// ドキュメントIDを座標4値そのものから組み立てるため、完全一致キーの意味論は
// PostgreSQL実装と同一になる
type FirestoreDistanceCacheRepository struct {
	client *firestore.Client
}

func NewFirestoreDistanceCacheRepository(client *firestore.Client) repository.DistanceCacheRepository {
	return &FirestoreDistanceCacheRepository{
		client: client,
	}
}

// firestoreDistanceEntry Firestore保存用の構造体
type firestoreDistanceEntry struct {
	OriginLat  float64 `firestore:"origin_lat"`
	OriginLng  float64 `firestore:"origin_lng"`
	DestLat    float64 `firestore:"dest_lat"`
	DestLng    float64 `firestore:"dest_lng"`
	DistanceKm float64 `firestore:"distance_km"`
}

func (r *FirestoreDistanceCacheRepository) Get(ctx context.Context, key model.DistanceCacheKey) (*float64, error) {
	doc, err := r.client.Collection("distanceCache").Doc(docID(key)).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("距離キャッシュの取得に失敗しました: %w", err)
	}

	var entry firestoreDistanceEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	return &entry.DistanceKm, nil
}

// Put エントリを保存する。Createを使うため既存ドキュメントは上書きされず、
// 並行する2つのミスが同じキーを書いても2件目は無視される
func (r *FirestoreDistanceCacheRepository) Put(ctx context.Context, entry *model.DistanceCacheEntry) error {
	data := firestoreDistanceEntry{
		OriginLat:  entry.OriginLat,
		OriginLng:  entry.OriginLng,
		DestLat:    entry.DestLat,
		DestLng:    entry.DestLng,
		DistanceKm: entry.DistanceKm,
	}

	_, err := r.client.Collection("distanceCache").Doc(docID(entry.Key())).Create(ctx, data)
	if err != nil {
		if strings.Contains(err.Error(), "AlreadyExists") || strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("距離キャッシュの保存に失敗しました: %w", err)
	}

	return nil
}

// docID 座標4値からドキュメントIDを組み立てる（ビット単位の完全一致キー）
func docID(key model.DistanceCacheKey) string {
	parts := []string{
		strconv.FormatFloat(key.OriginLat, 'f', -1, 64),
		strconv.FormatFloat(key.OriginLng, 'f', -1, 64),
		strconv.FormatFloat(key.DestLat, 'f', -1, 64),
		strconv.FormatFloat(key.DestLng, 'f', -1, 64),
	}
	return strings.Join(parts, "_")
}
