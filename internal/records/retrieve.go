// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/statute-parser/pkg/types"
)

// QueryOptions holds parameters for record queries.
type QueryOptions struct {
	// Query is a full-text search over paragraph titles and content. Each
	// whitespace-separated term must match.
	Query string

	// LawNumber filters by exact law number, e.g. "595/2003".
	LawNumber string

	// Section filters by exact section title, e.g. "Prvá".
	Section string

	// Article filters by exact article title line.
	Article string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.LawNumber == "" && q.Section == "" && q.Article == ""
}

// QueryResult is a stored record with its identity in the database.
type QueryResult struct {
	ID       string `json:"id" yaml:"id"`
	LawID    string `json:"law_id" yaml:"law_id"`
	Position int    `json:"position" yaml:"position"`

	types.Record `yaml:",inline"`
}

// Retrieve queries stored records. Full-text queries are ranked by
// relevance; filter-only queries return records in document order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	return s.query(ctx, opts, limit)
}

// query runs opts returning at most limit results, or every match when
// limit is zero.
func (s *Store) query(ctx context.Context, opts QueryOptions, limit int) ([]QueryResult, error) {
	var (
		qb     strings.Builder
		args   []any
		useFTS = strings.TrimSpace(opts.Query) != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.id, r.law_id, r.position, r.law_number, r.date,
				r.section_title, r.article_title, r.paragraph_title, r.content
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, matchExpr(opts.Query))
	} else {
		qb.WriteString(
			`SELECT r.id, r.law_id, r.position, r.law_number, r.date,
				r.section_title, r.article_title, r.paragraph_title, r.content
			FROM records r
			WHERE 1=1`)
	}

	if opts.LawNumber != "" {
		qb.WriteString(` AND r.law_number = ?`)
		args = append(args, opts.LawNumber)
	}
	if opts.Section != "" {
		qb.WriteString(` AND r.section_title = ?`)
		args = append(args, opts.Section)
	}
	if opts.Article != "" {
		qb.WriteString(` AND r.article_title = ?`)
		args = append(args, opts.Article)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY r.law_id, r.position`)
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var qr QueryResult
		if err := rows.Scan(
			&qr.ID, &qr.LawID, &qr.Position, &qr.LawNumber, &qr.Date,
			&qr.SectionTitle, &qr.ArticleTitle, &qr.ParagraphTitle, &qr.Content,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, qr)
	}
	return results, rows.Err()
}

// LawSummary describes one indexed law.
type LawSummary struct {
	ID        string `json:"id" yaml:"id"`
	LawNumber string `json:"law_number" yaml:"law_number"`
	Date      string `json:"date" yaml:"date"`
	Records   int    `json:"records" yaml:"records"`
}

// Laws lists the indexed laws with their record counts, ordered by ID.
func (s *Store) Laws(ctx context.Context) ([]LawSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.law_number, l.date, count(r.rowid)
		FROM laws l
		LEFT JOIN records r ON r.law_id = l.id
		GROUP BY l.id
		ORDER BY l.id`)
	if err != nil {
		return nil, fmt.Errorf("listing laws: %w", err)
	}
	defer rows.Close()

	var laws []LawSummary
	for rows.Next() {
		var l LawSummary
		if err := rows.Scan(&l.ID, &l.LawNumber, &l.Date, &l.Records); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		laws = append(laws, l)
	}
	return laws, rows.Err()
}

// matchExpr quotes each term of q as an FTS5 string so punctuation such
// as "Z. z." or "§" is matched literally instead of parsed as syntax.
func matchExpr(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
