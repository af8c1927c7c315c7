// Package handler exposes the comic collection over HTTP.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rlcurrall/collection-example/internal/domains/comic"
	"github.com/rlcurrall/collection-example/internal/shared/middleware"
	"github.com/rlcurrall/collection-example/internal/shared/response"
	"github.com/rlcurrall/collection-example/pkg/cache"
	"github.com/rlcurrall/collection-example/pkg/logger"
)

const detailCacheTTL = 5 * time.Minute

// Handler holds the comic HTTP handlers.
type Handler struct {
	service comic.Service
	cache   cache.Cache
}

func NewHandler(service comic.Service, cache cache.Cache) *Handler {
	return &Handler{service: service, cache: cache}
}

// ListComics - GET /comics?page=<int>&order[price]=<asc|desc>&username=&title=
func (h *Handler) ListComics(c *gin.Context) {
	req := comic.PageRequest{
		Page:     1,
		Username: c.Query("username"),
		Title:    c.Query("title"),
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			req.Page = p
		}
	}

	order, ok := comic.ParseOrderDirection(c.Query("order[price]"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "order[price] must be asc or desc")
		return
	}
	req.OrderPrice = order

	comics, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, comics)
}

// CreateComic - POST /comics
func (h *Handler) CreateComic(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing identity")
		return
	}

	var req comic.NewComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	// Ownership always comes from the token, never the body.
	created, err := h.service.Create(c.Request.Context(), identity.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// GetComic - GET /comics/:id
func (h *Handler) GetComic(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cacheKey := detailCacheKey(id)
	var cached comic.Comic
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.JSON(c, http.StatusOK, &cached)
		return
	}
	if err != nil {
		logger.Error("comic detail cache read failed", err)
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, detail, detailCacheTTL); err != nil {
		logger.Error("comic detail cache write failed", err)
	}

	response.JSON(c, http.StatusOK, detail)
}

// ReplaceComic - PUT /comics/:id
func (h *Handler) ReplaceComic(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing identity")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req comic.ReplaceComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Replace(c.Request.Context(), id, identity.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateDetail(c, id)
	response.JSON(c, http.StatusOK, updated)
}

// UpdateComic - PATCH /comics/:id
func (h *Handler) UpdateComic(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing identity")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req comic.UpdateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, identity.Username, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidateDetail(c, id)
	response.JSON(c, http.StatusOK, updated)
}

// DeleteComic - DELETE /comics/:id
func (h *Handler) DeleteComic(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing identity")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, identity.Username); err != nil {
		respondError(c, err)
		return
	}

	h.invalidateDetail(c, id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) invalidateDetail(c *gin.Context, id int64) {
	if err := h.cache.Delete(c.Request.Context(), detailCacheKey(id)); err != nil {
		logger.Error("comic detail cache invalidation failed", err)
	}
}

func detailCacheKey(id int64) string {
	return fmt.Sprintf("comic:detail:%d", id)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid comic id")
		return 0, false
	}
	return id, true
}

// respondError maps the closed set of service outcomes onto response
// categories. Unknown errors are store failures and surface as 500 with the
// underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comic.ErrComicNotFound):
		response.Error(c, http.StatusNotFound, "Comic not found")
	case errors.Is(err, comic.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "You do not own this item")
	default:
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
