package handlers

import (
	"net/http"
	"strconv"

	"hirepulse/internal/app"
	"hirepulse/internal/http/middleware"
	"hirepulse/internal/http/response"
)

type AdminHandler struct {
	admin *app.AdminService
}

func NewAdminHandler(admin *app.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 20
	if value := r.URL.Query().Get("page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	users, err := h.admin.ListUsers(r.Context(), page, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, users)
}

func (h *AdminHandler) SetUserActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			response.Error(w, errUnauthorized())
			return
		}
		userID, err := idFromPath(r, 2)
		if err != nil {
			response.Error(w, err)
			return
		}
		if err := h.admin.SetUserActive(r.Context(), principal, userID, active); err != nil {
			response.Error(w, err)
			return
		}
		message := "user deactivated"
		if active {
			message = "user activated"
		}
		response.JSON(w, http.StatusOK, map[string]string{"message": message})
	}
}
