package app

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/Dineep4/QuickBite/configs"
	"github.com/Dineep4/QuickBite/internal/adapter/cache"
	httpadapter "github.com/Dineep4/QuickBite/internal/adapter/http"
	"github.com/Dineep4/QuickBite/internal/adapter/http/middleware"
	"github.com/Dineep4/QuickBite/internal/adapter/queue"
	"github.com/Dineep4/QuickBite/internal/adapter/repo"
	"github.com/Dineep4/QuickBite/internal/logging"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, logLevel(cfg.App.LogLevel))

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}
	if err := repo.EnsureSchema(ctx, db); err != nil {
		return nil, nil, err
	}

	// Menu cache is an optimization; run without it when redis is not
	// configured.
	var menuCache usecase.MenuCache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unavailable, menu cache disabled", "error", err.Error())
			rdb = nil
		} else {
			menuCache = cache.NewRedisMenuCache(rdb, cfg.Redis.MenuTTL)
		}
	}

	// Event publishing is best-effort; the API stays up without a broker.
	var events usecase.EventPublisher
	var rabbitConn *amqp.Connection
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, order events disabled", "error", err.Error())
		} else {
			ch, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
			producer, err := queue.NewRabbitProducer(ch)
			if err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
			events = producer
			rabbitConn = conn
		}
	}

	orderRepo := repo.NewMySQLOrderRepo(db)
	menuRepo := repo.NewMySQLMenuRepo(db)
	contactRepo := repo.NewMySQLContactRepo(db)

	loc := cfg.Location()
	placeUC := usecase.NewPlaceOrder(orderRepo, menuRepo, events, loc)
	ordersUC := usecase.NewOrders(orderRepo, events, loc)
	menuUC := usecase.NewMenu(menuRepo, menuCache)

	oh := httpadapter.NewOrderHandler(placeUC, ordersUC)
	mh := httpadapter.NewMenuHandler(menuUC)
	sh := httpadapter.NewStaffHandler(cfg)
	cth := httpadapter.NewContactHandler(contactRepo)
	auth := middleware.NewStaffAuth(cfg)
	router := httpadapter.NewRouter(oh, mh, sh, cth, auth)

	cleanup := func() {
		_ = db.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
		if rabbitConn != nil {
			_ = rabbitConn.Close()
		}
	}

	return &App{Router: router}, cleanup, nil
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
