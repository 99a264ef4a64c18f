package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// ErrEmptyPrompt is returned when saving a prompt with no text.
var ErrEmptyPrompt = errors.New("prompt text is empty")

// promptRepo implements PromptRepo with ent SQL builders.
type promptRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

// Save trims name and text and stores them under a new UUID. An empty
// name falls back to the first line of the text.
func (r *promptRepo) Save(ctx context.Context, name, text string) (*SavedPrompt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPrompt
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPromptName(text)
	}

	p := SavedPrompt{
		ID:        uuid.NewString(),
		Name:      name,
		Text:      text,
		CreatedAt: r.now().UTC(),
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(promptTable).
		Columns("id", "name", "text", "created_at").
		Values(p.ID, p.Name, p.Text, formatTime(p.CreatedAt)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("save prompt: %w", err)
	}
	return &p, nil
}

func (r *promptRepo) List(ctx context.Context) ([]SavedPrompt, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("id", "name", "text", "created_at").
		From(b.Table(promptTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Asc("name")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var out []SavedPrompt
	for rows.Next() {
		var (
			p         SavedPrompt
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = t
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return out, nil
}

func (r *promptRepo) Delete(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(promptTable).
		Where(entsql.EQ("id", id)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("prompt %s: %w", id, ErrNotFound)
	}
	return nil
}

func defaultPromptName(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	const max = 40
	if r := []rune(line); len(r) > max {
		return string(r[:max]) + "..."
	}
	return line
}
