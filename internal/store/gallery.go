package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// DefaultSubmitter is stored when a record is published without a name.
const DefaultSubmitter = "Anonymous"

var galleryColumns = []string{
	"id", "title", "question", "student_responses",
	"analysis_question", "analysis_result", "submitted_by", "submitted_at",
}

// galleryRepo implements GalleryRepo with ent SQL builders.
type galleryRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *galleryRepo) Insert(ctx context.Context, rec GalleryRecord) (*GalleryRecord, error) {
	if strings.TrimSpace(rec.SubmittedBy) == "" {
		rec.SubmittedBy = DefaultSubmitter
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = r.now()
	}
	rec.SubmittedAt = rec.SubmittedAt.UTC()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(galleryTable).
		Columns(galleryColumns[1:]...).
		Values(
			rec.Title,
			rec.Question,
			rec.StudentResponses,
			nullString(rec.AnalysisQuestion),
			nullString(rec.AnalysisResult),
			rec.SubmittedBy,
			formatTime(rec.SubmittedAt),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("insert gallery record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("gallery record id: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

func (r *galleryRepo) List(ctx context.Context, limit int) ([]GalleryRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(galleryColumns...).
		From(b.Table(galleryTable)).
		OrderBy(entsql.Desc("submitted_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list gallery records: %w", err)
	}
	defer rows.Close()

	var out []GalleryRecord
	for rows.Next() {
		rec, err := scanGalleryRecord(&rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gallery records: %w", err)
	}
	return out, nil
}

func (r *galleryRepo) Get(ctx context.Context, id int64) (*GalleryRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(galleryColumns...).
		From(b.Table(galleryTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("get gallery record %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get gallery record %d: %w", id, err)
		}
		return nil, nil
	}
	return scanGalleryRecord(&rows)
}

func scanGalleryRecord(rows *entsql.Rows) (*GalleryRecord, error) {
	var (
		rec              GalleryRecord
		analysisQuestion sql.NullString
		analysisResult   sql.NullString
		submittedAt      string
	)
	if err := rows.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Question,
		&rec.StudentResponses,
		&analysisQuestion,
		&analysisResult,
		&rec.SubmittedBy,
		&submittedAt,
	); err != nil {
		return nil, fmt.Errorf("scan gallery record: %w", err)
	}
	rec.AnalysisQuestion = analysisQuestion.String
	rec.AnalysisResult = analysisResult.String

	t, err := parseTime(submittedAt)
	if err != nil {
		return nil, err
	}
	rec.SubmittedAt = t
	return &rec, nil
}

// nullString stores empty optional text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
