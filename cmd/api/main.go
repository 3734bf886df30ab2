package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/AndhiniDev/dapur-azka-backend/internal/checkout"
	"github.com/AndhiniDev/dapur-azka-backend/internal/config"
	"github.com/AndhiniDev/dapur-azka-backend/internal/httpx"
	kafkax "github.com/AndhiniDev/dapur-azka-backend/internal/kafka"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/AndhiniDev/dapur-azka-backend/internal/reviews"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("store", zap.Error(err))
	}
	defer closeStore()

	// Kafka producers, satu per topic
	pCreated := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, log)
	pCreated.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024, log)
	pStatus.Start(ctx)

	// Services
	catalogSvc := catalog.NewService(store)
	cartSvc := cart.NewService(store)
	authSvc := auth.NewService(store, cartSvc)
	registry := orders.NewRegistry(store, pStatus, cfg.ServiceName, log)
	checkoutSvc := checkout.NewService(cartSvc, catalogSvc, registry, authSvc, pCreated, cfg.ServiceName, log)
	reviewSvc := reviews.NewService(store)
	chatSvc := chat.NewService(store)

	if err := authSvc.Seed(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}

	// HTTP
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	mw := &httpx.Middleware{Tokens: tokens, Auth: authSvc}
	validate := validator.New()

	router := httpx.NewRouter()
	(&httpx.AuthHandler{Auth: authSvc, Tokens: tokens, Validate: validate}).Register(router, mw)
	(&httpx.CatalogHandler{Catalog: catalogSvc}).Register(router, mw)
	(&httpx.CartHandler{Carts: cartSvc, Catalog: catalogSvc, Validate: validate}).Register(router, mw)
	(&httpx.CheckoutHandler{Checkout: checkoutSvc, Auth: authSvc, Validate: validate}).Register(router, mw)
	(&httpx.OrdersHandler{Registry: registry}).Register(router, mw)
	(&httpx.ReviewsHandler{Reviews: reviewSvc, Catalog: catalogSvc, Auth: authSvc, Validate: validate}).Register(router, mw)
	(&httpx.ChatHandler{Chats: chatSvc}).Register(router, mw)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pCreated.Close() // tutup inbox -> flush & close writer
	pStatus.Close()
	cancel() // stop producer loops
	pCreated.WaitClosed()
	pStatus.WaitClosed()
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (kvstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return kvstore.NewMemory(log), func() {}, nil
	case "postgres":
		pg, err := kvstore.NewPostgres(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		r := kvstore.NewRedis(cfg.RedisAddr, log)
		return r, func() { _ = r.Close() }, nil
	}
}
