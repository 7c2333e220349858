package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"starter.GO/api"
	"starter.GO/core/cache"
	entity "starter.GO/model/entity"
)

func userTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("user_api_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func userTestServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	// The route module uses the process-wide cache; evict ids this test can
	// touch so runs do not see each other's entries.
	for id := uint(1); id <= 10; id++ {
		cache.GetInstance().Delete(fmt.Sprintf("user:%d", id))
	}
	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler
	RegisterUserRoutes(e.Group("/api/v1"), db)
	return e
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var r *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserAPI_CreateAndGet(t *testing.T) {
	e := userTestServer(t, userTestDB(t))

	rec := doJSON(e, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"name":  "Ada",
		"email": "ada@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (%s)", rec.Code, rec.Body)
	}
	var created struct {
		Status string      `json:"status"`
		Data   entity.User `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != "success" || created.Data.UserID == 0 {
		t.Fatalf("created = %+v", created)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.Data.UserID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var got struct {
		Data entity.User `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Data.Email != "ada@example.com" {
		t.Errorf("email = %q", got.Data.Email)
	}
}

func TestUserAPI_CreateValidation(t *testing.T) {
	e := userTestServer(t, userTestDB(t))
	rec := doJSON(e, http.MethodPost, "/api/v1/users", map[string]interface{}{"name": "NoEmail"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserAPI_GetMissing(t *testing.T) {
	e := userTestServer(t, userTestDB(t))
	rec := doJSON(e, http.MethodGet, "/api/v1/users/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp api.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "Failed" || resp.Message != "User Not Found" {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestUserAPI_BadID(t *testing.T) {
	e := userTestServer(t, userTestDB(t))
	rec := doJSON(e, http.MethodGet, "/api/v1/users/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUserAPI_List(t *testing.T) {
	db := userTestDB(t)
	e := userTestServer(t, db)
	for i := 0; i < 3; i++ {
		db.Create(&entity.User{Name: "U", Email: fmt.Sprintf("u%d@example.com", i), IsActive: 1})
	}

	rec := doJSON(e, http.MethodGet, "/api/v1/users?page=1&size=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data struct {
			Users []entity.User `json:"users"`
			Total int64         `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Data.Total)
	}
	if len(resp.Data.Users) != 2 {
		t.Errorf("page len = %d, want 2", len(resp.Data.Users))
	}
}

func TestUserAPI_UpdateDelete(t *testing.T) {
	db := userTestDB(t)
	e := userTestServer(t, db)
	u := entity.User{Name: "Old", Email: "x@example.com", IsActive: 1}
	db.Create(&u)

	rec := doJSON(e, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", u.UserID), map[string]interface{}{
		"name":  "New",
		"email": "x@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (%s)", rec.Code, rec.Body)
	}

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", u.UserID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", u.UserID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestUserAPI_SearchUnconfigured(t *testing.T) {
	e := userTestServer(t, userTestDB(t))
	rec := doJSON(e, http.MethodGet, "/api/v1/users/search?q=ada", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
