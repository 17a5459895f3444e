package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tiendazana/storefront-api/internal/config"
	"github.com/tiendazana/storefront-api/internal/httpx"
	kafkax "github.com/tiendazana/storefront-api/internal/kafka"
	"github.com/tiendazana/storefront-api/internal/orders"
	"github.com/tiendazana/storefront-api/internal/postgres"
	"github.com/tiendazana/storefront-api/internal/ratelimit"
	"github.com/tiendazana/storefront-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	// Rate limiter with background eviction
	limiter := ratelimit.NewWindow(cfg.RateLimit, cfg.RateWindow)
	go limiter.Sweep(ctx, 10*time.Minute)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("timezone %q not found, using UTC", cfg.Timezone)
		loc = time.UTC
	}

	// Repo & handler
	repo := &orders.Repo{DB: db}
	router := httpx.NewRouter(cfg.AllowedOrigins)
	oh := &httpx.OrdersHandler{
		Repo:     repo,
		Limiter:  limiter,
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
		Loc:      loc,
	}
	oh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
