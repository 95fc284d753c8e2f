package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omoide-app/backend/internal/services"
)

// PostHandler exposes the post lifecycle and every read pattern over
// memories: by owner, by category, ranked, paginated, and searched.
type PostHandler struct {
	posts   *services.PostService
	queries *services.QueryService
}

func NewPostHandler(posts *services.PostService, queries *services.QueryService) *PostHandler {
	return &PostHandler{posts: posts, queries: queries}
}

type postRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	post, err := h.posts.Create(r.Context(), ident, req.Title, req.Content, req.Category)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	post, err := h.posts.Update(r.Context(), ident, chi.URLParam(r, "link"), req.Title, req.Content, req.Category)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := identity(w, r)
	if !ok {
		return
	}
	post, err := h.posts.Delete(r.Context(), ident, chi.URLParam(r, "link"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// GetByLink fetches a post by its public link. Reading is open to
// everyone and bumps the read counter as a side effect.
func (h *PostHandler) GetByLink(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.RecordReadAndFetch(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}
	post, err := h.posts.IncrementLikes(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) ByUserLink(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ByOwnerLink(r.Context(), chi.URLParam(r, "link"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByUserID(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ByOwnerID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) ByCategoryPage(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	posts, err := h.queries.ByCategoryPaginated(r.Context(), chi.URLParam(r, "category"), page)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) All(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.All(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Paginated(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	posts, err := h.queries.Paginated(r.Context(), page)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) TopByRecency(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.TopByRecency(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) TopByLikes(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.TopByLikes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) TopByReads(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.TopByReads(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.Search(r.Context(), chi.URLParam(r, "search"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func parsePage(w http.ResponseWriter, r *http.Request) (int, bool) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		respondError(w, http.StatusBadRequest, "Invalid page number")
		return 0, false
	}
	return page, true
}
