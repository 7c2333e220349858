package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"starter.GO/core/registry"
)

func TestRegisterRoute_Apply(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)

	RegisterGET("/registry/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"pong": true})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/registry/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRegisterModule_AppliedOnGroup(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)

	RegisterModule(func(g *echo.Group, db *gorm.DB) {
		g.GET("/registrytest", func(c echo.Context) error {
			return c.JSON(http.StatusOK, echo.Map{"ok": true})
		})
	})

	e := echo.New()
	ApplyModules(e.Group("/api/v1"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/registrytest", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRegisterRoute_LockedPanics(t *testing.T) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	defer func() {
		if recover() == nil {
			t.Error("RegisterRoute on locked registry did not panic")
		}
	}()
	RegisterGET("/late", func(c echo.Context) error { return nil })
}

func TestDuplicateRegistration_LastWriteWins(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)

	RegisterGET("/dup", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"handler": "first"})
	})
	RegisterGET("/dup", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"handler": "second"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/dup", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["handler"] != "second" {
		t.Errorf("handler = %q, want second (last registration wins)", resp["handler"])
	}
}
