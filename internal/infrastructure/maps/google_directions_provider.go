package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FoodBridge-App/internal/domain/model"
	"FoodBridge-App/internal/domain/repository"
)

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した経路距離取得の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) repository.DirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetRouteDistanceMeters はGoogle Maps Directions APIを呼び出して経路距離を取得する
func (g *GoogleDirectionsProvider) GetRouteDistanceMeters(ctx context.Context, origin, dest model.LatLng) (float64, error) {
	// 1. APIリクエストURLを構築
	reqURL := g.buildURL(origin, dest)

	// 2. HTTPリクエストを作成・実行
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	// 3. JSONレスポンスをパース
	var apiResp googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" || len(apiResp.Routes) == 0 || len(apiResp.Routes[0].Legs) == 0 {
		return 0, errors.New("APIから有効なルートが返されませんでした")
	}

	// 4. 最初のルートの先頭区間の距離を返す
	return float64(apiResp.Routes[0].Legs[0].Distance.Value), nil
}

func (g *GoogleDirectionsProvider) buildURL(origin, dest model.LatLng) string {
	baseURL := "https://maps.googleapis.com/maps/api/directions/json"
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", baseURL, params.Encode())
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleRouteResponse struct {
	Routes       []route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}
type route struct {
	Legs []leg `json:"legs"`
}
type leg struct {
	Distance distance `json:"distance"`
}
type distance struct {
	Value int `json:"value"` // meters
}
