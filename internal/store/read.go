package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const translationColumns = `seq, id, query_hash, source, infix, quads, dialect, compact, output, tree, translator_version, tree_version`

// LookupTranslation returns the recorded translation of a query hash in
// dialect and layout. found is false when none exists.
func (s *Store) LookupTranslation(ctx context.Context, queryHash, dialect string, compact bool) (t Translation, found bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+translationColumns+`
		FROM translations
		WHERE query_hash = ? AND dialect = ? AND compact = ?
	`, queryHash, dialect, boolToInt(compact))

	t, err = scanTranslation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Translation{}, false, nil
	}
	if err != nil {
		return Translation{}, false, fmt.Errorf("lookup translation: %w", err)
	}
	return t, true, nil
}

// ListTranslations returns recorded translations newest first. limit <= 0
// means no limit.
//
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) ListTranslations(ctx context.Context, limit int) ([]Translation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+translationColumns+`
		FROM translations
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	translations := []Translation{}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}

	return translations, nil
}

// CountTranslations returns the number of recorded translations.
func (s *Store) CountTranslations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTranslation(row scanner) (Translation, error) {
	var (
		t                     Translation
		infix, quads, compact int
		treeJSON              string
	)
	err := row.Scan(
		&t.Seq,
		&t.ID,
		&t.QueryHash,
		&t.Source,
		&infix,
		&quads,
		&t.Dialect,
		&compact,
		&t.Output,
		&treeJSON,
		&t.TranslatorVersion,
		&t.TreeVersion,
	)
	if err != nil {
		return Translation{}, err
	}

	t.Infix = infix != 0
	t.Quads = quads != 0
	t.Compact = compact != 0

	t.Tree, err = unmarshalTree(treeJSON)
	if err != nil {
		return Translation{}, err
	}
	return t, nil
}
