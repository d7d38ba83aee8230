package main

import (
	"context"
	"os"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/handler"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/infra/db"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/infra/queue"
	infraRepo "github.com/achrafbchir/ecommerce-shopping-cart/internal/infra/repository"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/mail"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/server"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは無くてもよい
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("GO_ENV") != "prod" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Sale{},
	); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//低在庫アラートのキュー。Kafka未設定ならインメモリ。
	var lowStockQueue jobs.Queue
	var lowStockConsumer jobs.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		kq := queue.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaLowStockTopic)
		defer kq.Close()
		kc := queue.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaLowStockTopic, "low-stock-worker")
		defer kc.Close()
		lowStockQueue, lowStockConsumer = kq, kc
	} else {
		mq := queue.NewMemoryQueue(256)
		lowStockQueue, lowStockConsumer = mq, mq
	}

	//Mailer。SMTP未設定ならログのみ。
	var mailer mail.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		mailer = mail.NewLogMailer()
	}

	//バックグラウンドワーカー起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := jobs.NewLowStockWorker(lowStockConsumer, mailer, cfg.AdminEmail)
	go worker.Run(ctx)

	reportJob := jobs.NewDailySalesReportJob(saleRepo, productRepo, mailer, cfg.AdminEmail)
	go reportJob.RunDaily(ctx)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(txManager, cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	checkoutUC.AddPostCommitHook(usecase.LowStockEnqueueHook(lowStockQueue, cfg.LowStockThreshold))

	productUC := usecase.NewProductUsecase(productRepo, cfg.LowStockThreshold)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo, cfg.LowStockThreshold)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, cartUC)
	dashboardUC := usecase.NewDashboardUsecase(
		userRepo, productRepo, saleRepo, cartItemRepo, cartUC,
		&realClock{}, cfg.LowStockThreshold,
	)

	//Handler生成
	handlers := server.Handlers{
		Product:        handler.NewProductHandler(productUC),
		Cart:           handler.NewCartHandler(cartUC, checkoutUC),
		Dashboard:      handler.NewDashboardHandler(dashboardUC),
		AdminProduct:   handler.NewAdminProductHandler(adminProductUC),
		AdminUser:      handler.NewAdminUserHandler(adminUserUC),
		AdminDashboard: handler.NewAdminDashboardHandler(dashboardUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info().Str("addr", addr).Msg("starting api server")
	if err := server.Start(addr, cfg, handlers); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
