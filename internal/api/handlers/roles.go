package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/blogpost-backend/internal/api/httpx"
	"github.com/baharkarakas/blogpost-backend/internal/services"
)

type RoleHandler struct {
	roles *services.RoleService
}

func NewRoleHandler(roles *services.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": roles})
}

// UsersWithRole lists the users holding the named role; a known role with
// no users is an empty array, not an error.
func (h *RoleHandler) UsersWithRole(w http.ResponseWriter, r *http.Request) {
	users, err := h.roles.UsersWithRole(r.Context(), chi.URLParam(r, "roleName"))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": users})
}
