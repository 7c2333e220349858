package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"starter.GO/api"
	"starter.GO/config"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

func RegisterHealthRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/", func(c echo.Context) error {
		return api.Success(c, http.StatusOK, "Welcome to the server", nil)
	})

	e.GET("/health", func(c echo.Context) error {
		dbStatus := "up"
		if db == nil {
			dbStatus = "down"
		} else if sqldb, err := db.DB(); err != nil || sqldb.Ping() != nil {
			dbStatus = "down"
		}

		redisStatus := "disabled"
		if config.RedisClient != nil {
			redisStatus = "up"
			if config.RedisClient.Ping(config.RedisCtx()).Err() != nil {
				redisStatus = "down"
			}
		}

		if dbStatus == "down" {
			return api.Failed(c, http.StatusServiceUnavailable, "database unreachable")
		}
		return api.Success(c, http.StatusOK, "health", echo.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})
}
