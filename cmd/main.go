package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"FoodBridge-App/internal/database"
	domainrepo "FoodBridge-App/internal/domain/repository"
	"FoodBridge-App/internal/domain/service"
	"FoodBridge-App/internal/handler"
	fsinfra "FoodBridge-App/internal/infrastructure/firestore"
	"FoodBridge-App/internal/infrastructure/maps"
	"FoodBridge-App/internal/repository"
	"FoodBridge-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY")
		fmt.Println("DB接続にはDATABASE_URLまたはSUPABASE_DB_PASSWORDのいずれかが必要です")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	ctx := context.Background()

	fmt.Println("Initializing PostgreSQL client...")
	pgClient, err := database.NewPostgreSQLClient()
	if err != nil {
		log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
	}
	defer pgClient.Close()

	fmt.Println("Performing PostgreSQL health check...")
	if err := pgClient.HealthCheck(); err != nil {
		log.Fatalf("PostgreSQLヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ PostgreSQL connection successful!")

	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}

	// 距離キャッシュの保存先（デフォルトはPostgreSQL、firestoreを指定可能）
	var distanceCacheRepo domainrepo.DistanceCacheRepository
	if os.Getenv("DISTANCE_CACHE_BACKEND") == "firestore" {
		projectID := os.Getenv("FIRESTORE_PROJECT_ID")
		if projectID == "" {
			log.Fatal("FIRESTORE_PROJECT_ID環境変数が設定されていません")
		}
		fsClient, err := fsinfra.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer fsClient.Close()
		distanceCacheRepo = repository.NewFirestoreDistanceCacheRepository(fsClient.GetClient())
	} else {
		distanceCacheRepo = repository.NewPostgresDistanceCacheRepository(pgClient)
	}

	// 経路距離の取得戦略: APIキーがなければ決定的なローカル幾何計算へ切り替える
	// 2つの戦略は同一契約の下で交換可能だが、1つのキャッシュ内で混在させないこと
	var directionsProvider domainrepo.DirectionsProvider
	if apiKey := os.Getenv("GOOGLE_MAPS_API_KEY"); apiKey != "" {
		directionsProvider = maps.NewGoogleDirectionsProvider(apiKey)
	} else {
		fmt.Println("⚠️  GOOGLE_MAPS_API_KEY未設定: ローカル幾何計算で距離を解決します")
		directionsProvider = maps.NewHaversineDirectionsProvider()
	}

	// リポジトリの初期化
	usersRepo := repository.NewSupabaseUsersRepository(supabaseClient)
	listingsRepo := repository.NewPostgresListingsRepository(pgClient)
	requestsRepo := repository.NewPostgresPickupRequestsRepository(pgClient)
	historyRepo := repository.NewPostgresHistoryRepository(pgClient)
	transactor := repository.NewPostgresTransactor(pgClient)

	// サービス・ユースケースの初期化
	distanceResolver := service.NewDistanceResolver(distanceCacheRepo, directionsProvider)
	listingUseCase := usecase.NewListingUseCase(usersRepo, listingsRepo)
	fulfillmentUseCase := usecase.NewFulfillmentUseCase(usersRepo, listingsRepo, requestsRepo, historyRepo, transactor)
	matchingUseCase := usecase.NewMatchingUseCase(usersRepo, listingsRepo, requestsRepo, historyRepo, distanceResolver)

	// ハンドラーの初期化
	listingsHandler := handler.NewListingsHandler(listingUseCase, fulfillmentUseCase)
	requestsHandler := handler.NewRequestsHandler(fulfillmentUseCase)
	dashboardHandler := handler.NewDashboardHandler(matchingUseCase)

	// ルーティングの設定
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/listings", listingsHandler.CreateListing)
		api.GET("/listings/:id", listingsHandler.GetListing)
		api.PUT("/listings/:id", listingsHandler.UpdateListing)
		api.DELETE("/listings/:id", listingsHandler.WithdrawListing)
		api.POST("/listings/:id/requests", requestsHandler.SubmitRequest)
		api.PUT("/requests/:id/status", requestsHandler.UpdateRequestStatus)
		api.GET("/donors/:id/dashboard", dashboardHandler.GetDonorDashboard)
		api.GET("/receivers/:id/dashboard", dashboardHandler.GetReceiverDashboard)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "FoodBridge-App"})
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("FoodBridge-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}
