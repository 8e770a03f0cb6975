package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindsprint_backend/internals/features/homework/assignments/model"
	"mindsprint_backend/internals/helpers/apperr"
)

func sampleAssignment(title, assignee string) *model.Assignment {
	return &model.Assignment{
		Title:      title,
		AssignedTo: assignee,
		AssignedBy: "therapist-1",
		Category:   model.CategoryMindfulness,
		Status:     model.StatusPending,
	}
}

// runStoreContract exercises behaviour every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("insert assigns id and timestamps", func(t *testing.T) {
		s := newStore(t)
		due := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		a := sampleAssignment("Practice Mindfulness", "client1")
		a.DueDate = &due

		id, err := s.Insert(ctx, a)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		require.Equal(t, id, a.ID)
		require.False(t, a.CreatedAt.IsZero())
		require.Equal(t, a.CreatedAt, a.UpdatedAt)

		got, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, *a, *got)
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := newStore(t)
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			id, err := s.Insert(ctx, sampleAssignment("t", "client1"))
			require.NoError(t, err)
			require.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("lists are newest first", func(t *testing.T) {
		s := newStore(t)
		var ids []string
		for _, who := range []string{"client1", "client2", "client1", "client1"} {
			id, err := s.Insert(ctx, sampleAssignment("t", who))
			require.NoError(t, err)
			ids = append(ids, id)
		}

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{ids[3], ids[2], ids[1], ids[0]}, idsOf(all))

		mine, err := s.FindByAssignee(ctx, "client1")
		require.NoError(t, err)
		require.Equal(t, []string{ids[3], ids[2], ids[0]}, idsOf(mine))

		none, err := s.FindByAssignee(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})

	t.Run("update applies mutator and keeps identity", func(t *testing.T) {
		s := newStore(t)
		a := sampleAssignment("t", "client1")
		id, err := s.Insert(ctx, a)
		require.NoError(t, err)

		notes := "felt calmer"
		got, err := s.Update(ctx, id, func(m *model.Assignment) error {
			m.ID = "hijacked"
			m.CreatedAt = time.Time{}
			m.MarkCompleted(time.Now(), &notes)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, id, got.ID)
		require.Equal(t, a.CreatedAt, got.CreatedAt)
		require.Equal(t, model.StatusCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
		require.Equal(t, "felt calmer", *got.ClientNotes)
		require.False(t, got.UpdatedAt.Before(a.UpdatedAt))

		reread, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, *got, *reread)
	})

	t.Run("mutator error aborts update", func(t *testing.T) {
		s := newStore(t)
		a := sampleAssignment("t", "client1")
		id, err := s.Insert(ctx, a)
		require.NoError(t, err)

		boom := errors.New("boom")
		_, err = s.Update(ctx, id, func(m *model.Assignment) error {
			m.Title = "changed"
			return boom
		})
		require.ErrorIs(t, err, boom)

		reread, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "t", reread.Title)
	})

	t.Run("missing ids are not found", func(t *testing.T) {
		s := newStore(t)
		missing := "0190d6f4-0000-7000-8000-000000000000"

		_, err := s.FindByID(ctx, missing)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		_, err = s.Update(ctx, missing, func(*model.Assignment) error { return nil })
		require.ErrorIs(t, err, apperr.ErrNotFound)
		require.ErrorIs(t, s.Delete(ctx, missing), apperr.ErrNotFound)

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Insert(ctx, sampleAssignment("t", "client1"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, id))
		_, err = s.FindByID(ctx, id)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		require.ErrorIs(t, s.Delete(ctx, id), apperr.ErrNotFound)

		mine, err := s.FindByAssignee(ctx, "client1")
		require.NoError(t, err)
		require.Empty(t, mine)
	})
}

func idsOf(list []model.Assignment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}
