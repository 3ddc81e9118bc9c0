package store

import (
	"context"
	"fmt"
)

// WriteTranslation records t and returns its ID and whether a new row was
// inserted.
//
// Uses ON CONFLICT(query_hash, dialect, compact) DO NOTHING: when the same
// query was already recorded in the same dialect and layout, the existing
// row's ID is returned with inserted=false and t is discarded.
func (s *Store) WriteTranslation(ctx context.Context, t Translation) (id string, inserted bool, err error) {
	treeJSON, err := marshalTree(t.Tree)
	if err != nil {
		return "", false, fmt.Errorf("write translation: %w", err)
	}

	id = t.ID
	if id == "" {
		id = s.idGen.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write translation: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO translations
		(id, query_hash, source, infix, quads, dialect, compact, output, tree, translator_version, tree_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_hash, dialect, compact) DO NOTHING
	`,
		id,
		t.QueryHash,
		t.Source,
		boolToInt(t.Infix),
		boolToInt(t.Quads),
		t.Dialect,
		boolToInt(t.Compact),
		t.Output,
		treeJSON,
		t.TranslatorVersion,
		t.TreeVersion,
	)
	if err != nil {
		return "", false, fmt.Errorf("write translation: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("write translation: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		inserted = true
	} else {
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM translations
			WHERE query_hash = ? AND dialect = ? AND compact = ?
		`, t.QueryHash, t.Dialect, boolToInt(t.Compact)).Scan(&id)
		if err != nil {
			return "", false, fmt.Errorf("write translation: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write translation: commit: %w", err)
	}

	return id, inserted, nil
}
