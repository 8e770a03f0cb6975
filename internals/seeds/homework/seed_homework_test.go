package homework

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/features/homework/assignments/service"
	"mindsprint_backend/internals/features/homework/assignments/store"
)

func TestLoadBundledSamples(t *testing.T) {
	seeds, err := Load("")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	require.Equal(t, "Practice Mindfulness", seeds[0].Title)
	require.Equal(t, "Journal Your Thoughts", seeds[1].Title)
	require.True(t, seeds[1].Completed)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"Breathe","assignedTo":"c9","assignedBy":"t1"}]`), 0o600))

	seeds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, seeds, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestSeedHomeworkIsIdempotent(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := service.New(st, log)

	seeds, err := Load("")
	require.NoError(t, err)

	n, err := SeedHomework(ctx, svc, seeds, log)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = SeedHomework(ctx, svc, seeds, log)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, 2, st.Len())

	list, err := svc.ListForUser(ctx, "client1")
	require.NoError(t, err)
	byTitle := map[string]model.Assignment{}
	for _, a := range list {
		byTitle[a.Title] = a
	}
	require.Equal(t, model.StatusPending, byTitle["Practice Mindfulness"].Status)
	require.Equal(t, model.StatusCompleted, byTitle["Journal Your Thoughts"].Status)
	require.NotNil(t, byTitle["Journal Your Thoughts"].CompletedAt)
	require.Equal(t, "dr-smith", byTitle["Journal Your Thoughts"].AssignedBy)
}

func TestSeedHomeworkStopsOnInvalidSeed(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := service.New(store.NewMemoryStore(), log)

	_, err := SeedHomework(context.Background(), svc, []HomeworkSeed{{Title: "", AssignedTo: "c1", AssignedBy: "t1"}}, log)
	require.Error(t, err)
}
