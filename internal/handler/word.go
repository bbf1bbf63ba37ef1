package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wordwell/wordwell/internal/model"
	"github.com/wordwell/wordwell/internal/store"
)

// WordHandler serves the public, unauthenticated word endpoints.
type WordHandler struct {
	store *store.Store
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(s *store.Store) *WordHandler {
	return &WordHandler{store: s}
}

// languageTable resolves the {lang} path parameter or writes a 400.
func languageTable(w http.ResponseWriter, r *http.Request) (string, bool) {
	table, err := model.LanguageTable(chi.URLParam(r, "lang"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported language")
		return "", false
	}
	return table, true
}

// Random returns one random word from the language's dictionary.
// GET /{lang}/random
func (h *WordHandler) Random(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}

	word, err := h.store.RandomWord(r.Context(), table)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No words available")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, publicWord(word))
}

// RandomByType returns one random word of the requested grammatical type.
// GET /{lang}/{type}
func (h *WordHandler) RandomByType(w http.ResponseWriter, r *http.Request) {
	table, ok := languageTable(w, r)
	if !ok {
		return
	}

	wordType := chi.URLParam(r, "type")
	if !model.ValidWordType(wordType) {
		writeError(w, http.StatusBadRequest, "Unknown word type")
		return
	}

	word, err := h.store.RandomWordByType(r.Context(), table, wordType)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No words available")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, publicWord(word))
}

func publicWord(word *model.Word) model.PublicWord {
	return model.PublicWord{
		Word:          word.Word,
		Definition:    word.Definition,
		Pronunciation: word.Pronunciation,
	}
}
