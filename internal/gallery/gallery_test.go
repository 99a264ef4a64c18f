package gallery

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:gallery_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s.GalleryRepo())
}

func sampleState() session.State {
	return session.State{
		Question: "Why do we have day and night?",
		Responses: []response.StudentResponse{
			{ID: 2, Content: "The Earth spins on its axis.", Quality: response.QualityAverage},
			{ID: 1, Content: "The sun goes around us.", Quality: response.QualityWeak},
			{ID: 3, Content: "Rotation every 24 hours turns each side toward the sun."},
		},
		Source:   response.SourceMock,
		Analysis: &response.Analysis{Question: "Any misconceptions?", Response: "**Student 1**: geocentric view."},
	}
}

func TestSubmitGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	st := sampleState()

	saved, err := svc.Submit(ctx, "Day and night", "Ms. Rivera", st)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.False(t, saved.SubmittedAt.IsZero())

	got, err := svc.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day and night", got.Title)
	assert.Equal(t, st.Question, got.Question)
	assert.Equal(t, st.Responses, got.Responses)
	assert.Equal(t, st.Analysis, got.Analysis)
	assert.Equal(t, "Ms. Rivera", got.SubmittedBy)
}

func TestSubmitDefaults(t *testing.T) {
	svc := newTestService(t)
	st := sampleState()
	st.Analysis = nil
	st.Question = strings.Repeat("q", 80)

	saved, err := svc.Submit(context.Background(), "  ", "", st)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("q", 60)+"...", saved.Title)
	assert.Equal(t, store.DefaultSubmitter, saved.SubmittedBy)
	assert.Nil(t, saved.Analysis)
}

func TestSubmitRequiresResponses(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Submit(context.Background(), "t", "", session.State{Question: "q"})
	assert.ErrorIs(t, err, ErrNothingToPublish)
}

func TestGetMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Submit(ctx, title, "", sampleState())
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)

	two, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestRemix(t *testing.T) {
	e := Entry{
		Question:  "q",
		Responses: sampleState().Responses,
		Analysis:  &response.Analysis{Question: "a", Response: "b"},
	}

	st := Remix(e)
	assert.Equal(t, "q", st.Question)
	assert.Equal(t, e.Responses, st.Responses)
	assert.Equal(t, response.SourceGallery, st.Source)
	require.NotNil(t, st.Analysis)
	assert.Equal(t, "b", st.Analysis.Response)
	assert.Empty(t, st.Banner)

	st.Responses[0].Content = "changed"
	st.Analysis.Response = "changed"
	assert.NotEqual(t, "changed", e.Responses[0].Content)
	assert.Equal(t, "b", e.Analysis.Response)
}
