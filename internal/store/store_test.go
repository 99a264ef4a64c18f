package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{galleryTable, promptTable, eventTable} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestOpenFileDatabaseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.GalleryRepo().Insert(context.Background(), GalleryRecord{Title: "t", Question: "q", StudentResponses: "[]"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	recs, err := s.GalleryRepo().List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records after reopen = %d, want 1", len(recs))
	}
}

func TestGalleryInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.GalleryRepo()
	ctx := context.Background()

	at := time.Date(2026, 3, 4, 10, 30, 0, 123456789, time.UTC)
	in := GalleryRecord{
		Title:            "Photosynthesis check-in",
		Question:         "What is photosynthesis?",
		StudentResponses: `[{"id":1,"content":"Plants make food.","quality":"weak"}]`,
		AnalysisQuestion: "Which misconceptions appear?",
		AnalysisResult:   "**Student 1**: Needs detail.",
		SubmittedBy:      "Ms. Rivera",
		SubmittedAt:      at,
	}
	saved, err := repo.Insert(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	in.ID = saved.ID
	if !got.SubmittedAt.Equal(at) {
		t.Errorf("submitted_at = %v, want %v", got.SubmittedAt, at)
	}
	got.SubmittedAt, in.SubmittedAt = time.Time{}, time.Time{}
	if *got != in {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *got, in)
	}
}

func TestGalleryDefaults(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	repo := s.GalleryRepo()
	ctx := context.Background()

	saved, err := repo.Insert(ctx, GalleryRecord{Title: "t", Question: "q", StudentResponses: "[]", SubmittedBy: "   "})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SubmittedBy != DefaultSubmitter {
		t.Errorf("submitted_by = %q, want %q", got.SubmittedBy, DefaultSubmitter)
	}
	if !got.SubmittedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("submitted_at = %v", got.SubmittedAt)
	}
	if got.AnalysisQuestion != "" || got.AnalysisResult != "" {
		t.Errorf("expected empty analysis, got %q / %q", got.AnalysisQuestion, got.AnalysisResult)
	}

	var nulls int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM gallery_sessions WHERE analysis_result IS NULL").Scan(&nulls); err != nil {
		t.Fatalf("count nulls: %v", err)
	}
	if nulls != 1 {
		t.Errorf("null analysis rows = %d, want 1", nulls)
	}
}

func TestGalleryGetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GalleryRepo().Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestGalleryListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	s.now = stepClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := s.GalleryRepo()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := repo.Insert(ctx, GalleryRecord{Title: title, Question: "q", StudentResponses: "[]"}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}

	recs, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var titles []string
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	if strings.Join(titles, ",") != "third,second,first" {
		t.Errorf("order = %v", titles)
	}

	limited, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Title != "third" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestPromptSaveListDelete(t *testing.T) {
	s := openTestStore(t)
	s.now = stepClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := s.PromptRepo()
	ctx := context.Background()

	a, err := repo.Save(ctx, "  Misconceptions ", "  What misconceptions do students have?  ")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if a.Name != "Misconceptions" || a.Text != "What misconceptions do students have?" {
		t.Errorf("not trimmed: %+v", a)
	}
	if len(a.ID) != 36 {
		t.Errorf("id %q is not a uuid", a.ID)
	}

	b, err := repo.Save(ctx, "", "Create a chart of answer quality\nwith percentages")
	if err != nil {
		t.Fatalf("save unnamed: %v", err)
	}
	if b.Name != "Create a chart of answer quality" {
		t.Errorf("default name = %q", b.Name)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID {
		t.Fatalf("list = %+v, want newest first", list)
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("remaining = %d, want 1", len(list))
	}
}

func TestPromptSaveRejectsEmpty(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.PromptRepo().Save(context.Background(), "x", "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("got %v, want ErrEmptyPrompt", err)
	}
}

func TestEventAppendQueryAndUsage(t *testing.T) {
	s := openTestStore(t)
	s.now = stepClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-3.5-turbo", Purpose: "responses", InputTokens: 100, OutputTokens: 300, LatencyMs: 900, Success: true, RequestBody: "[user]\nq", ResponseBody: "1. a"},
		{Provider: "openai", Model: "gpt-3.5-turbo", Purpose: "analysis", InputTokens: 400, OutputTokens: 200, LatencyMs: 1100, Success: true},
		{Provider: "openai", Model: "gpt-3.5-turbo", Purpose: "responses", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" || all[0].Success {
		t.Errorf("newest event = %+v", all[0])
	}

	onlyResponses, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "responses", Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(onlyResponses) != 1 || onlyResponses[0].ID != all[0].ID {
		t.Errorf("purpose filter = %+v", onlyResponses)
	}

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.RequestBody != "[user]\nq" || first.ResponseBody != "1. a" || !first.Success {
		t.Errorf("first event = %+v", first)
	}
	missing, err := repo.GetLLMEvent(ctx, 12345)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %+v", byPurpose)
	}
	// Ordered by purpose name.
	if byPurpose[1].Purpose != "responses" || byPurpose[1].Calls != 2 || byPurpose[1].InputTokens != 100 || byPurpose[1].AvgLatencyMs != 500 {
		t.Errorf("responses usage = %+v", byPurpose[1])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 || byModel[0].OutputTokens != 500 {
		t.Errorf("model usage = %+v", byModel)
	}
}
