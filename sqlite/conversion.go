package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/blockdoc"
)

// Ensure ConversionService implements blockdoc.ConversionStore at compile time.
var _ blockdoc.ConversionStore = (*ConversionService)(nil)

// ConversionService implements blockdoc.ConversionStore using SQLite.
type ConversionService struct {
	db *DB
}

// NewConversionService creates a new ConversionService.
func NewConversionService(db *DB) *ConversionService {
	return &ConversionService{db: db}
}

// SaveConversion stores a conversion, replacing any with the same key. A
// zero CreatedAt is set to the current time.
func (s *ConversionService) SaveConversion(ctx context.Context, c *blockdoc.Conversion) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (key, file, title, source_hash, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			file = excluded.file,
			title = excluded.title,
			source_hash = excluded.source_hash,
			output = excluded.output,
			created_at = excluded.created_at
	`, c.Key, c.File, c.Title, c.SourceHash, c.Output, c.CreatedAt.Format(time.RFC3339))
	return err
}

// FindConversion retrieves a conversion by key.
func (s *ConversionService) FindConversion(ctx context.Context, key string) (*blockdoc.Conversion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, file, title, source_hash, output, created_at
		FROM conversions WHERE key = ?
	`, key)

	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, blockdoc.Errorf(blockdoc.ENOTFOUND, "conversion not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindConversions retrieves conversions matching the filter, newest first.
func (s *ConversionService) FindConversions(ctx context.Context, filter blockdoc.ConversionFilter) ([]*blockdoc.Conversion, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT key, file, title, source_hash, output, created_at FROM conversions WHERE 1=1")

	if filter.File != nil {
		query.WriteString(" AND file = ?")
		args = append(args, *filter.File)
	}

	query.WriteString(" ORDER BY created_at DESC, key ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*blockdoc.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteConversion removes a conversion.
func (s *ConversionService) DeleteConversion(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversions WHERE key = ?", key)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return blockdoc.Errorf(blockdoc.ENOTFOUND, "conversion not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (*blockdoc.Conversion, error) {
	var c blockdoc.Conversion
	var createdAt string
	if err := row.Scan(&c.Key, &c.File, &c.Title, &c.SourceHash, &c.Output, &createdAt); err != nil {
		return nil, err
	}

	var err error
	c.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &c, nil
}
