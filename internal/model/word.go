package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// GrammaticalTypes lists the word_type values accepted by the API. The set
// follows standard dictionary part-of-speech categories; matching is
// case-sensitive (lowercase only).
var GrammaticalTypes = []string{
	"noun", "verb", "adjective", "adverb", "pronoun",
	"preposition", "conjunction", "interjection", "article",
}

// languageTables maps a supported language code to the table holding its
// words. Additional languages get their own table (words_de, words_fr, ...)
// once the data exists.
var languageTables = map[string]string{
	"en": "words",
}

// LanguageTable resolves a language code from the request path to its
// backing table name. Unsupported codes return an error so handlers can
// reject the request before any query is built.
func LanguageTable(lang string) (string, error) {
	table, ok := languageTables[lang]
	if !ok {
		return "", fmt.Errorf("unsupported language code: %q", lang)
	}
	return table, nil
}

// ValidWordType reports whether t is one of the accepted grammatical types.
func ValidWordType(t string) bool {
	for _, g := range GrammaticalTypes {
		if t == g {
			return true
		}
	}
	return false
}

// Word is a dictionary entry as stored in the database and returned from
// admin endpoints.
type Word struct {
	ID            int64     `json:"id" db:"id"`
	Word          string    `json:"word" db:"word"`
	Definition    string    `json:"definition" db:"definition"`
	Pronunciation string    `json:"pronunciation" db:"pronunciation"`
	WordType      string    `json:"wordType" db:"word_type"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicWord is the reduced representation served from the public random
// endpoints. Database IDs and timestamps are not exposed.
type PublicWord struct {
	Word          string `json:"word" db:"word"`
	Definition    string `json:"definition" db:"definition"`
	Pronunciation string `json:"pronunciation" db:"pronunciation"`
}

// UpsertWord is the payload for creating or updating a word. All fields are
// required and validated; text is lowercased before storage so lookups stay
// consistent.
type UpsertWord struct {
	Word          string `json:"word"`
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
	WordType      string `json:"wordType"`
}

var (
	// Lemma: letters, digits, hyphens, apostrophes, periods, and common
	// accented Latin ranges. No whitespace.
	lemmaRe = regexp.MustCompile(`^[a-zA-Z0-9\-'.À-ÿĀ-žḀ-ỿ]+$`)

	// Definition: dictionary prose. Letters, digits, whitespace, and the
	// punctuation that shows up in definitions.
	definitionRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿĀ-žḀ-ỿ0-9\s.,;:!?()'\-]+$`)

	// Pronunciation: IPA notation enclosed in forward slashes.
	pronunciationRe = regexp.MustCompile(`^/[a-zA-Zəɛɪɔʊʌɑæɒɜʏˈˌːˑθðʃʒʧʤŋɹɾɭɻɲɳʰʷʲˠˤᵊᵛᵚᵏ]+/$`)
)

// ValidLemma reports whether s is acceptable as a dictionary lemma.
func ValidLemma(s string) bool {
	return s != "" && lemmaRe.MatchString(s)
}

// ValidDefinition reports whether s is acceptable dictionary definition text.
func ValidDefinition(s string) bool {
	return s != "" && definitionRe.MatchString(s)
}

// ValidPronunciation reports whether s is slash-delimited IPA notation.
func ValidPronunciation(s string) bool {
	return s != "" && pronunciationRe.MatchString(s)
}

// Validate checks all fields of the payload and returns the first problem
// found. It does not mutate the payload.
func (u *UpsertWord) Validate() error {
	if !ValidLemma(u.Word) {
		return fmt.Errorf("invalid word: %q", u.Word)
	}
	if !ValidDefinition(u.Definition) {
		return fmt.Errorf("invalid definition: %q", u.Definition)
	}
	if !ValidPronunciation(u.Pronunciation) {
		return fmt.Errorf("invalid pronunciation: %q", u.Pronunciation)
	}
	if !ValidWordType(strings.ToLower(u.WordType)) {
		return fmt.Errorf("invalid word type: %q", u.WordType)
	}
	return nil
}

// Normalize lowercases all fields in place. Called after Validate, before
// the row is written.
func (u *UpsertWord) Normalize() {
	u.Word = strings.ToLower(u.Word)
	u.Definition = strings.ToLower(u.Definition)
	u.Pronunciation = strings.ToLower(u.Pronunciation)
	u.WordType = strings.ToLower(u.WordType)
}
