package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vollnycoelho/yogaa/config"
	"github.com/vollnycoelho/yogaa/db"
	"github.com/vollnycoelho/yogaa/middlewares"
	"github.com/vollnycoelho/yogaa/models"
	"github.com/vollnycoelho/yogaa/routes"
	"github.com/vollnycoelho/yogaa/utils"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store models.Storage
	switch cfg.StoreBackend {
	case "memory":
		// already carries the demo data set
		store = models.NewMemoryStorage()

	case "postgres":
		sqldb, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("postgres:", err)
		}
		defer sqldb.Close()
		if err := db.InitSchema(sqldb); err != nil {
			log.Fatal("postgres schema:", err)
		}
		store = models.NewPostgresStorage(sqldb)

	case "mongo":
		mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("mongo.Connect:", err)
		}
		if err := mg.Ping(ctx, nil); err != nil {
			log.Fatal("mongo ping:", err)
		}
		defer func() { _ = mg.Disconnect(context.Background()) }()
		store, err = models.NewMongoStorage(ctx, mg.Database(cfg.MongoDB))
		if err != nil {
			log.Fatal("mongo:", err)
		}

	default:
		log.Fatalf("unknown STORE_BACKEND %q (want memory, postgres or mongo)", cfg.StoreBackend)
	}

	if cfg.SeedDemo && cfg.StoreBackend != "memory" {
		if err := models.SeedDemoData(ctx, store); err != nil {
			log.Fatal("seed:", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)
	auth := middlewares.NewSessionAuth([]byte(cfg.SessionSecret), store)

	server := gin.Default()
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))

	routes.RegisterRoutes(server, store, auth, rdb, inv)

	log.Printf("listening on %s (store=%s)", cfg.Addr, cfg.StoreBackend)
	if err := server.Run(cfg.Addr); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
