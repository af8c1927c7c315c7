// Package handler exposes the identity-echo endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rlcurrall/collection-example/internal/shared/middleware"
	"github.com/rlcurrall/collection-example/internal/shared/response"
)

// Handler holds the auth HTTP handlers.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetMe - GET /me
//
// Returns the Identity decoded from the presented bearer token. Diagnostic
// endpoint: it proves a token verifies and shows what it claims.
func (h *Handler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing identity")
		return
	}

	response.JSON(c, http.StatusOK, identity)
}
