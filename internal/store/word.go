package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wordwell/wordwell/internal/model"
)

// ListWords returns every word in the given language table, ordered
// alphabetically.
func (s *Store) ListWords(ctx context.Context, table string) ([]model.Word, error) {
	words := []model.Word{}
	q := fmt.Sprintf("SELECT * FROM %s ORDER BY word", table)
	if err := s.db.SelectContext(ctx, &words, q); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// GetWord returns a single word by ID, or ErrNotFound.
func (s *Store) GetWord(ctx context.Context, table string, id int64) (*model.Word, error) {
	var w model.Word
	q := s.db.Rebind(fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table))
	err := s.db.GetContext(ctx, &w, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return &w, nil
}

// RandomWord returns one word chosen uniformly at random, or ErrNotFound
// when the table is empty.
func (s *Store) RandomWord(ctx context.Context, table string) (*model.Word, error) {
	var w model.Word
	q := fmt.Sprintf("SELECT * FROM %s ORDER BY %s LIMIT 1", table, s.randomFn())
	err := s.db.GetContext(ctx, &w, q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("random word: %w", err)
	}
	return &w, nil
}

// RandomWordByType returns one word of the given grammatical type chosen
// uniformly at random, or ErrNotFound when no such word exists.
func (s *Store) RandomWordByType(ctx context.Context, table, wordType string) (*model.Word, error) {
	var w model.Word
	q := s.db.Rebind(fmt.Sprintf(
		"SELECT * FROM %s WHERE word_type = ? ORDER BY %s LIMIT 1", table, s.randomFn()))
	err := s.db.GetContext(ctx, &w, q, wordType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("random word by type: %w", err)
	}
	return &w, nil
}

// CreateWord inserts a new word and returns it with ID and timestamps set.
// The input must already be validated and normalized.
func (s *Store) CreateWord(ctx context.Context, table string, in *model.UpsertWord) (*model.Word, error) {
	now := time.Now().UTC()
	w := model.Word{
		Word:          in.Word,
		Definition:    in.Definition,
		Pronunciation: in.Pronunciation,
		WordType:      in.WordType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if s.driver == "mysql" {
		q := s.db.Rebind(fmt.Sprintf(
			`INSERT INTO %s (word, definition, pronunciation, word_type, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`, table))
		res, err := s.db.ExecContext(ctx, q,
			w.Word, w.Definition, w.Pronunciation, w.WordType, w.CreatedAt, w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("create word: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("create word: %w", err)
		}
		w.ID = id
		return &w, nil
	}

	q := s.db.Rebind(fmt.Sprintf(
		`INSERT INTO %s (word, definition, pronunciation, word_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`, table))
	if err := s.db.GetContext(ctx, &w.ID, q,
		w.Word, w.Definition, w.Pronunciation, w.WordType, w.CreatedAt, w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}
	return &w, nil
}

// UpdateWord replaces the word with the given ID and returns the updated
// row, or ErrNotFound. The input must already be validated and normalized.
func (s *Store) UpdateWord(ctx context.Context, table string, id int64, in *model.UpsertWord) (*model.Word, error) {
	q := s.db.Rebind(fmt.Sprintf(
		`UPDATE %s SET word = ?, definition = ?, pronunciation = ?, word_type = ?, updated_at = ?
		 WHERE id = ?`, table))
	res, err := s.db.ExecContext(ctx, q,
		in.Word, in.Definition, in.Pronunciation, in.WordType, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetWord(ctx, table, id)
}

// DeleteWord removes the word with the given ID, or returns ErrNotFound.
func (s *Store) DeleteWord(ctx context.Context, table string, id int64) error {
	q := s.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table))
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountWords returns the number of words in the given language table.
func (s *Store) CountWords(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := s.db.GetContext(ctx, &n, q); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}
