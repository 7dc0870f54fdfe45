package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "reward-server/internal/application/catalog"
	historyapp "reward-server/internal/application/history"
	redemptionapp "reward-server/internal/application/redemption"
	"reward-server/internal/domain/privilege"
	"reward-server/internal/domain/service"
	"reward-server/internal/infrastructure/config"
	otelinfra "reward-server/internal/infrastructure/observability/otel"
	"reward-server/internal/infrastructure/persistence/mysql"
	"reward-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("reward-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("reward-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// リポジトリの初期化
	memberRepo := mysql.NewMemberRepository(db)
	rewardRepo := mysql.NewRewardRepository(db)
	redemptionRepo := mysql.NewRedemptionRepository(db)
	ledgerRepo := mysql.NewLedgerRepository(db)
	notifier := mysql.NewNotificationRepository(db)

	// トランザクションマネージャーの初期化
	txManager := mysql.NewTransactionManager(db)

	// 権限階層の初期化（設定の順序付きラベルリストから構築）
	hierarchy, err := privilege.NewHierarchy(cfg.Privilege.Hierarchy)
	if err != nil {
		log.Fatalf("Failed to build privilege hierarchy: %v", err)
	}

	// ドメインサービスの初期化
	eligibilityService := service.NewEligibilityService(hierarchy)

	// アプリケーションサービスの初期化
	catalogAppService := catalogapp.NewCatalogApplicationService(
		memberRepo,
		rewardRepo,
		eligibilityService,
		logger,
		metrics,
	)

	redemptionAppService := redemptionapp.NewRedemptionApplicationService(
		memberRepo,
		rewardRepo,
		redemptionRepo,
		ledgerRepo,
		txManager,
		hierarchy,
		notifier,
		logger,
		metrics,
	)

	historyAppService := historyapp.NewHistoryApplicationService(
		ledgerRepo,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		catalogAppService,
		redemptionAppService,
		historyAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
