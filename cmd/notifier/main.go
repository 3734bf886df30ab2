package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/AndhiniDev/dapur-azka-backend/internal/config"
	kafkax "github.com/AndhiniDev/dapur-azka-backend/internal/kafka"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/AndhiniDev/dapur-azka-backend/internal/notifier"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
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

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("store", zap.Error(err))
	}
	defer closeStore()

	svc := &notifier.Service{
		Chats:       chat.NewService(store),
		Store:       store,
		ServiceName: cfg.ServiceName + "-notifier",
		Log:         log,
	}

	group := getenv("NOTIFIER_GROUP", "order-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	topics := []string{orders.TopicOrderCreated, orders.TopicStatusChanged}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topics, workers, log)

	go func() {
		log.Info("notifier consumer started",
			zap.String("group", group), zap.Strings("topics", topics), zap.Int("workers", workers))
		if err := cons.Start(ctx, svc.Handle); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
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

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
