package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wordwell/wordwell/internal/model"
	"github.com/wordwell/wordwell/internal/store"
)

// AdminHandler serves the authenticated word management endpoints.
type AdminHandler struct {
	store *store.Store
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(s *store.Store) *AdminHandler {
	return &AdminHandler{store: s}
}

// wordID parses the {id} path parameter or writes a 400.
func wordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "Invalid word ID")
		return 0, false
	}
	return id, true
}

// readUpsert decodes, validates, and normalizes a word payload, or writes
// a 400 with the validation problem.
func readUpsert(w http.ResponseWriter, r *http.Request) (*model.UpsertWord, bool) {
	var in model.UpsertWord
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	in.Normalize()
	return &in, true
}

// List returns every word in the language's dictionary.
// GET /admin/{lang}/words
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}
	words, err := h.store.ListWords(r.Context(), table)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// Get returns a single word by ID.
// GET /admin/{lang}/words/{id}
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}
	id, ok := wordID(w, r)
	if !ok {
		return
	}
	word, err := h.store.GetWord(r.Context(), table, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Word not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Create inserts a new word.
// POST /admin/{lang}/words
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}
	in, ok := readUpsert(w, r)
	if !ok {
		return
	}
	word, err := h.store.CreateWord(r.Context(), table, in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Update replaces an existing word.
// PUT /admin/{lang}/words/{id}
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}
	id, ok := wordID(w, r)
	if !ok {
		return
	}
	in, ok := readUpsert(w, r)
	if !ok {
		return
	}
	word, err := h.store.UpdateWord(r.Context(), table, id, in)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Word not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Delete removes a word.
// DELETE /admin/{lang}/words/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}
	id, ok := wordID(w, r)
	if !ok {
		return
	}
	err := h.store.DeleteWord(r.Context(), table, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Word not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	w.WriteHeader(http.StatusOK)
}
