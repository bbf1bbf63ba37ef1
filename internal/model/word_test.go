package model

import "testing"

func TestValidLemma(t *testing.T) {
	valid := []string{"hello", "co-worker", "don't", "Mr.", "café", "naïve", "test123"}
	for _, s := range valid {
		if !ValidLemma(s) {
			t.Errorf("ValidLemma(%q) = false, want true", s)
		}
	}

	invalid := []string{"hello world", "hello@world", "", "test\nline"}
	for _, s := range invalid {
		if ValidLemma(s) {
			t.Errorf("ValidLemma(%q) = true, want false", s)
		}
	}
}

func TestValidDefinition(t *testing.T) {
	valid := []string{
		"a word or phrase",
		"departing from an accepted standard",
		"test: definition with punctuation!",
	}
	for _, s := range valid {
		if !ValidDefinition(s) {
			t.Errorf("ValidDefinition(%q) = false, want true", s)
		}
	}

	invalid := []string{"contact us at test@email.com", "costs $50 or more", "", "test & more"}
	for _, s := range invalid {
		if ValidDefinition(s) {
			t.Errorf("ValidDefinition(%q) = true, want false", s)
		}
	}
}

func TestValidPronunciation(t *testing.T) {
	valid := []string{"/əˈbeɪt/", "/æˈberənt/", "/ˌæbəˈreɪʃən/", "/ˈhɛloʊ/", "/test/"}
	for _, s := range valid {
		if !ValidPronunciation(s) {
			t.Errorf("ValidPronunciation(%q) = false, want true", s)
		}
	}

	invalid := []string{"invalid", "//", "/test@/", "əˈbeɪt", ""}
	for _, s := range invalid {
		if ValidPronunciation(s) {
			t.Errorf("ValidPronunciation(%q) = true, want false", s)
		}
	}
}

func TestValidWordType(t *testing.T) {
	for _, g := range GrammaticalTypes {
		if !ValidWordType(g) {
			t.Errorf("ValidWordType(%q) = false, want true", g)
		}
	}

	for _, s := range []string{"", "invalid", "determiner", "NOUN"} {
		if ValidWordType(s) {
			t.Errorf("ValidWordType(%q) = true, want false", s)
		}
	}
}

func TestLanguageTable(t *testing.T) {
	table, err := LanguageTable("en")
	if err != nil {
		t.Fatalf("LanguageTable(en): %v", err)
	}
	if table != "words" {
		t.Errorf("table: got %q, want %q", table, "words")
	}

	for _, lang := range []string{"", "de", "EN", "xx"} {
		if _, err := LanguageTable(lang); err == nil {
			t.Errorf("LanguageTable(%q): expected error", lang)
		}
	}
}

func TestUpsertWordValidate(t *testing.T) {
	w := UpsertWord{
		Word:          "hello",
		Definition:    "a greeting",
		Pronunciation: "/həˈloʊ/",
		WordType:      "noun",
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := w
	bad.Word = "hello world" // contains a space
	if err := bad.Validate(); err == nil {
		t.Error("expected error for lemma with whitespace")
	}

	bad = w
	bad.WordType = "determiner"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown word type")
	}
}

func TestUpsertWordNormalize(t *testing.T) {
	w := UpsertWord{
		Word:          "Hello",
		Definition:    "A Greeting",
		Pronunciation: "/TEST/",
		WordType:      "Noun",
	}
	w.Normalize()

	if w.Word != "hello" || w.Definition != "a greeting" || w.WordType != "noun" {
		t.Errorf("Normalize did not lowercase all fields: %+v", w)
	}
}
