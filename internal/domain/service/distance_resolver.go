package service

import (
	"context"
	"log"
	"math"

	"FoodBridge-App/internal/domain/helper"
	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// DistanceResolver 2地点間の距離(km)をキャッシュ優先で解決するサービス
// 距離が得られない場合はnilを返す。呼び出し側はnilを「ランキングから距離を
// 省略する」として扱い、エラーとして扱ってはならない
type DistanceResolver interface {
	ResolveDistanceKm(ctx context.Context, origin, dest model.LatLng) *float64
}

// distanceResolverImpl DistanceResolverの実装
type distanceResolverImpl struct {
	cacheRepo repository.DistanceCacheRepository
	provider  repository.DirectionsProvider
}

// NewDistanceResolver DistanceResolverの新しいインスタンスを作成
func NewDistanceResolver(cacheRepo repository.DistanceCacheRepository, provider repository.DirectionsProvider) DistanceResolver {
	return &distanceResolverImpl{
		cacheRepo: cacheRepo,
		provider:  provider,
	}
}

// ResolveDistanceKm 距離を解決する
// 1. 座標を検証する（範囲外・非有限値は参照前に拒否）
// 2. 完全一致キーでキャッシュを引く（ヒット時はプロバイダを呼ばない）
// 3. ミス時のみプロバイダへ問い合わせ、小数第2位に丸めて保存・返却する
// プロバイダの失敗は呼び出し元へ伝播させず、次回の解決で再試行される
func (r *distanceResolverImpl) ResolveDistanceKm(ctx context.Context, origin, dest model.LatLng) *float64 {
	if !helper.IsValidLatLng(origin) || !helper.IsValidLatLng(dest) {
		return nil
	}

	key := model.NewDistanceCacheKey(origin, dest)

	cached, err := r.cacheRepo.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️ 距離キャッシュの参照失敗: %v", err)
	} else if cached != nil {
		return cached
	}

	meters, err := r.provider.GetRouteDistanceMeters(ctx, origin, dest)
	if err != nil {
		log.Printf("⚠️ 経路距離の取得失敗: %v", err)
		return nil
	}

	distanceKm := math.Round(meters/1000*100) / 100

	entry := &model.DistanceCacheEntry{
		OriginLat:  key.OriginLat,
		OriginLng:  key.OriginLng,
		DestLat:    key.DestLat,
		DestLng:    key.DestLng,
		DistanceKm: distanceKm,
	}
	if err := r.cacheRepo.Put(ctx, entry); err != nil {
		// 保存失敗は値の返却を妨げない（次回ミス時に再計算される）
		log.Printf("⚠️ 距離キャッシュの保存失敗: %v", err)
	}

	return &distanceKm
}
