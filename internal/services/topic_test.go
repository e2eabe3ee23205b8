package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"confdesk/internal/domain"
)

func TestTopicService_List(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTopicRepo()
	repo.byID["t-1"] = &domain.Topic{ID: "t-1", Name: "Go"}
	svc := NewTopicService(repo)

	topics, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
}

func TestTopicService_Rename(t *testing.T) {
	ctx := context.Background()

	seed := func() (*fakeTopicRepo, domain.TopicService) {
		repo := newFakeTopicRepo()
		repo.byID["t-1"] = &domain.Topic{ID: "t-1", Name: "Go"}
		return repo, NewTopicService(repo)
	}

	t.Run("staff renames", func(t *testing.T) {
		repo, svc := seed()
		require.NoError(t, svc.Rename(ctx, staffUser, "t-1", "Golang"))
		require.Equal(t, "Golang", repo.byID["t-1"].Name)
	})

	t.Run("non-staff is forbidden", func(t *testing.T) {
		_, svc := seed()
		require.ErrorIs(t, svc.Rename(ctx, authorUser, "t-1", "Golang"), domain.ErrForbidden)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, svc := seed()
		require.ErrorIs(t, svc.Rename(ctx, staffUser, "t-1", ""), domain.ErrInvalidInput)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		repo, svc := seed()
		repo.renameErr = domain.ErrConflict
		require.ErrorIs(t, svc.Rename(ctx, staffUser, "t-1", "Cloud"), domain.ErrConflict)
	})

	t.Run("unknown topic is not found", func(t *testing.T) {
		_, svc := seed()
		require.ErrorIs(t, svc.Rename(ctx, staffUser, "t-missing", "X"), domain.ErrNotFound)
	})
}

func TestTopicService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTopicRepo()
	repo.byID["t-1"] = &domain.Topic{ID: "t-1", Name: "Go"}
	svc := NewTopicService(repo)

	require.ErrorIs(t, svc.Delete(ctx, participantUser, "t-1"), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, staffUser, "t-1"))
	require.ErrorIs(t, svc.Delete(ctx, staffUser, "t-1"), domain.ErrNotFound)
}
