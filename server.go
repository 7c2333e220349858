//go:build !cli
// +build !cli

package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"starter.GO/api"
	_ "starter.GO/api/graphql"
	_ "starter.GO/api/health"
	_ "starter.GO/api/user"
	"starter.GO/config"
	"starter.GO/core/boot"
	"starter.GO/core/cache"
	_ "starter.GO/custom"
	entity "starter.GO/model/entity"
)

func main() {
	config.LoadEnv()
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	config.InitRedis(cfg)
	redisStatus := "Redis not configured, caching is in-memory only."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
			cache.AttachRedis(config.RedisClient)
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching is in-memory only."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.HTTPErrorHandler = api.ErrorHandler
	e.RouteNotFound("/*", api.NotFoundHandler)

	api.ApplyRoutes(e, db)
	v1 := e.Group("/api/v1")
	api.ApplyModules(v1, db)
	// NOTE: /api/v1/auth is an external collaborator and is not mounted here.

	sequencer := boot.New(
		func(ctx context.Context) error {
			sqldb, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqldb.PingContext(ctx); err != nil {
				return err
			}
			if cfg.DBSync {
				log.Println("Running schema sync (AutoMigrate)...")
				return db.AutoMigrate(&entity.User{})
			}
			return nil
		},
		func() error {
			name := cfg.AppName
			if name == "" {
				name = "Starter"
			}
			figure.NewFigure(name, "standard", true).Print()
			log.Printf("Server running on :%s", cfg.Port)
			return e.Start(":" + cfg.Port)
		},
	)

	// Failed verification terminates with a non-zero status; the listener is
	// never bound in that case.
	if err := sequencer.Run(context.Background()); err != nil {
		log.Fatalf("startup aborted: %v", err)
	}
}
