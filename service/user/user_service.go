package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/datatypes"

	"starter.GO/core/cache"
	entity "starter.GO/model/entity"
	userRepo "starter.GO/model/repository/user"
)

// Indexer mirrors users into an external search backend. Implementations may
// be absent; a nil Indexer disables indexing.
type Indexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
	RemoveUser(ctx context.Context, id uint) error
}

type UserService struct {
	repo    *userRepo.UserRepository
	cache   *cache.Cache
	indexer Indexer
}

// NewUserService wires the repository with the cache and an optional indexer.
// cache may be nil (caching disabled), indexer may be nil (search disabled).
func NewUserService(repo *userRepo.UserRepository, c *cache.Cache, indexer Indexer) *UserService {
	return &UserService{repo: repo, cache: c, indexer: indexer}
}

const userCacheTTL = 300 // seconds

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns a user by ID, serving from the local cache or, on a local
// miss, from the shared redis layer before touching the database.
func (s *UserService) Get(id uint) (*entity.User, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(userCacheKey(id)); ok {
			return v.(*entity.User), nil
		}
		var warmed entity.User
		if s.cache.GetInto(userCacheKey(id), &warmed) {
			return &warmed, nil
		}
	}
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(userCacheKey(id), u, userCacheTTL)
	}
	return u, nil
}

// List returns one page of users. page is 1-based; size defaults to 20.
func (s *UserService) List(page, size int) ([]entity.User, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page <= 0 {
		page = 1
	}
	return s.repo.List(size, (page-1)*size)
}

// Input carries the writable user fields.
type Input struct {
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Phone       *string                `json:"phone"`
	IsActive    *int16                 `json:"is_active"`
	Preferences map[string]interface{} `json:"preferences"`
}

func (in *Input) apply(u *entity.User) error {
	u.Name = in.Name
	u.Email = in.Email
	u.Phone = in.Phone
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Preferences != nil {
		b, err := json.Marshal(in.Preferences)
		if err != nil {
			return fmt.Errorf("encode preferences: %w", err)
		}
		u.Preferences = datatypes.JSON(b)
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, in *Input) (*entity.User, error) {
	u := &entity.User{IsActive: 1}
	if err := in.apply(u); err != nil {
		return nil, err
	}
	if err := s.repo.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.index(ctx, u)
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in *Input) (*entity.User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(u); err != nil {
		return nil, err
	}
	if err := s.repo.Update(u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(userCacheKey(id))
	}
	s.index(ctx, u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(userCacheKey(id))
	}
	if s.indexer != nil {
		if err := s.indexer.RemoveUser(ctx, id); err != nil {
			// Search is best-effort; the row is already gone.
			log.Printf("search remove user %d: %v", id, err)
		}
	}
	return nil
}

// SetAvatar persists the avatar path produced by the avatar service.
func (s *UserService) SetAvatar(id uint, path string) (*entity.User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	u.Avatar = &path
	if err := s.repo.Update(u); err != nil {
		return nil, fmt.Errorf("save avatar path: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(userCacheKey(id))
	}
	return u, nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexUser(ctx, u); err != nil {
		log.Printf("search index user %d: %v", u.UserID, err)
	}
}
