package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phoo-bakery/api/internal/cache"
	"github.com/phoo-bakery/api/internal/config"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/phoo-bakery/api/internal/events"
	"github.com/phoo-bakery/api/internal/handler"
	"github.com/phoo-bakery/api/internal/imagestore"
	"github.com/phoo-bakery/api/internal/router"
	"github.com/phoo-bakery/api/internal/service"
	"github.com/phoo-bakery/api/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	images, err := imagestore.New(imagestore.Credentials{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	}, cfg.ImageFolderRoot)
	if err != nil {
		log.Fatalf("Unable to configure image store: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	sinks := events.Fanout{hub}

	var listCache handler.OrderListCache
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: redis unavailable, order list cache disabled: %v", err)
		} else {
			defer rdb.Close()
			c := cache.NewOrderListCache(rdb, cfg.OrderCacheTTL)
			listCache = c
			sinks = append(sinks, c)
			log.Println("Order list cache enabled")
		}
	}

	if cfg.AMQPURL != "" {
		pub, err := events.DialPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("WARNING: amqp unavailable, order events are not published: %v", err)
		} else {
			defer pub.Close()
			sinks = append(sinks, pub)
			log.Printf("Publishing order events to exchange %q", cfg.AMQPExchange)
		}
	}

	orders := service.NewOrderService(queries, images, sinks)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(cfg, queries, orders, listCache, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}
