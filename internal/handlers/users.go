package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omoide-app/backend/internal/models"
	"github.com/omoide-app/backend/internal/services"
)

// UserHandler exposes registration, profile management, and public
// profile lookups.
type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// publicUser is the projection returned for user records. The password
// hash never leaves the service.
func publicUser(u *models.User) map[string]any {
	return map[string]any{
		"id":     u.ID.Hex(),
		"name":   u.Name,
		"email":  u.Email,
		"link":   u.Link,
		"isDemo": u.IsDemo,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	setAuthToken(w, token)
	respondJSON(w, http.StatusCreated, publicUser(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := h.svc.Update(r.Context(), ident, req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	setAuthToken(w, token)
	respondJSON(w, http.StatusOK, publicUser(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	user, postsDeleted, err := h.svc.Delete(r.Context(), ident)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user":         publicUser(user),
		"postsDeleted": postsDeleted,
	})
}

func (h *UserHandler) GetByLink(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetByLink(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, publicUser(user))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, publicUser(user))
}
