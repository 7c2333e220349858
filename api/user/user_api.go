package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"starter.GO/api"
	"starter.GO/config"
	"starter.GO/core/cache"
	userRepo "starter.GO/model/repository/user"
	avatarService "starter.GO/service/avatar"
	searchService "starter.GO/service/search"
	userService "starter.GO/service/user"
)

func init() {
	api.RegisterModule(RegisterUserRoutes)
}

// RegisterUserRoutes mounts the user CRUD endpoints on the /api/v1 group.
func RegisterUserRoutes(apiGroup *echo.Group, db *gorm.DB) {
	mediaDir := "media"
	searchAddr := ""
	if config.AppConfig != nil {
		mediaDir = config.AppConfig.MediaDir
		searchAddr = config.AppConfig.SearchAddr
	}

	search := searchService.NewSearchService(searchAddr)
	var indexer userService.Indexer
	if search.Enabled() {
		indexer = search
	}
	svc := userService.NewUserService(userRepo.NewUserRepository(db), cache.GetInstance(), indexer)
	avatars := avatarService.NewAvatarService(mediaDir)

	h := &handler{svc: svc, search: search, avatars: avatars}

	g := apiGroup.Group("/users")
	g.GET("", h.list)
	g.GET("/search", h.searchUsers)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/avatar", h.uploadAvatar)
}

type handler struct {
	svc     *userService.UserService
	search  *searchService.SearchService
	avatars *avatarService.AvatarService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return uint(id), nil
}

func (h *handler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	users, total, err := h.svc.List(page, size)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "users", echo.Map{
		"users": users,
		"total": total,
	})
}

func (h *handler) get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return api.Failed(c, http.StatusNotFound, "User Not Found")
		}
		return err
	}
	return api.Success(c, http.StatusOK, "user", u)
}

func (h *handler) create(c echo.Context) error {
	var in userService.Input
	if err := c.Bind(&in); err != nil {
		return api.Failed(c, http.StatusBadRequest, err.Error())
	}
	if in.Name == "" || in.Email == "" {
		return api.Failed(c, http.StatusBadRequest, "name and email are required")
	}
	u, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "user created", u)
}

func (h *handler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var in userService.Input
	if err := c.Bind(&in); err != nil {
		return api.Failed(c, http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return api.Failed(c, http.StatusNotFound, "User Not Found")
		}
		return err
	}
	return api.Success(c, http.StatusOK, "user updated", u)
}

func (h *handler) remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return api.Failed(c, http.StatusNotFound, "User Not Found")
		}
		return err
	}
	return api.Success(c, http.StatusOK, "user deleted", nil)
}

func (h *handler) searchUsers(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return api.Failed(c, http.StatusBadRequest, "q is required")
	}
	size, _ := strconv.Atoi(c.QueryParam("size"))
	hits, total, err := h.search.Search(c.Request().Context(), q, size)
	if err != nil {
		if errors.Is(err, searchService.ErrNotConfigured) {
			return api.Failed(c, http.StatusServiceUnavailable, "search not configured")
		}
		return err
	}
	return api.Success(c, http.StatusOK, "search results", echo.Map{
		"hits":  hits,
		"total": total,
	})
}

func (h *handler) uploadAvatar(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return api.Failed(c, http.StatusBadRequest, "avatar file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	path, err := h.avatars.Save(f, id)
	if err != nil {
		return api.Failed(c, http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.SetAvatar(id, path)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return api.Failed(c, http.StatusNotFound, "User Not Found")
		}
		return err
	}
	return api.Success(c, http.StatusOK, "avatar updated", u)
}
