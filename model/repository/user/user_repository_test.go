package user

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "starter.GO/model/entity"
)

func repoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("user_repo_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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

func TestUserRepository_CreateFind(t *testing.T) {
	r := NewUserRepository(repoTestDB(t))
	u := &entity.User{Name: "Ada", Email: "ada@example.com"}
	if err := r.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.UserID == 0 {
		t.Fatal("UserID not assigned")
	}

	got, err := r.FindByID(u.UserID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q", got.Email)
	}

	byEmail, err := r.FindByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.UserID != u.UserID {
		t.Errorf("FindByEmail id = %d, want %d", byEmail.UserID, u.UserID)
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	r := NewUserRepository(repoTestDB(t))
	_, err := r.FindByID(999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindByID(999) error = %v, want ErrRecordNotFound", err)
	}
}

func TestUserRepository_ListPagination(t *testing.T) {
	r := NewUserRepository(repoTestDB(t))
	for i := 0; i < 5; i++ {
		if err := r.Create(&entity.User{Name: "U", Email: fmt.Sprintf("u%d@example.com", i)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	users, total, err := r.List(2, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].Email != "u2@example.com" {
		t.Errorf("page start = %q, want u2@example.com", users[0].Email)
	}
}

func TestUserRepository_UpdateDelete(t *testing.T) {
	r := NewUserRepository(repoTestDB(t))
	u := &entity.User{Name: "Old", Email: "x@example.com"}
	if err := r.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u.Name = "New"
	if err := r.Update(u); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := r.FindByID(u.UserID)
	if got.Name != "New" {
		t.Errorf("Name = %q, want New", got.Name)
	}

	if err := r.Delete(u.UserID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(u.UserID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second Delete error = %v, want ErrRecordNotFound", err)
	}
}
