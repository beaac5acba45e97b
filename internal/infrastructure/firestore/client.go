package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient 距離キャッシュの代替保存先として使うFirestore接続のラッパー
// DISTANCE_CACHE_BACKEND=firestoreのときだけ初期化される
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 新しいFirestoreクライアントを作成
// Cloud Run上ではデフォルト認証、ローカルでは認証ファイルを使う
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, projectID, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの初期化に失敗: %w", err)
	}

	log.Printf("✅ Firestore距離キャッシュを初期化しました (project: %s)", projectID)
	return &FirestoreClient{client: client}, nil
}

// clientOptions 実行環境に応じた認証オプションを返す
func clientOptions() []option.ClientOption {
	// Cloud Run環境ではサービスアカウントのデフォルト認証に任せる
	if os.Getenv("K_SERVICE") != "" {
		return nil
	}

	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		credentialsFile = "foodbridge-firestore-key.json"
	}

	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("⚠️ 認証ファイルが見つかりません (%s): デフォルト認証を試みます", credentialsFile)
		return nil
	}

	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

// Close Firestore接続を閉じる
func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

// GetClient Firestoreクライアントを取得
func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
