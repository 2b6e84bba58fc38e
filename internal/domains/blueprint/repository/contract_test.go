package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueprints-backend/internal/domains/blueprint/model"
)

// runContract exercises the behaviour every RepositoryInterface must share.
// newRepo must return an empty store.
func runContract(t *testing.T, newRepo func(t *testing.T) RepositoryInterface) {
	ctx := context.Background()

	t.Run("get unknown blueprint is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByAuthorAndName(ctx, "nobody", "nothing")
		assert.ErrorIs(t, err, model.ErrBlueprintNotFound)
	})

	t.Run("save then get round trip", func(t *testing.T) {
		repo := newRepo(t)
		bp := model.New("alice", "painting", []model.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}})

		require.NoError(t, repo.Save(ctx, bp))

		got, err := repo.GetByAuthorAndName(ctx, "alice", "painting")
		require.NoError(t, err)
		assert.True(t, got.Equal(bp))
		assert.Equal(t, bp.Points(), got.Points())
	})

	t.Run("save without points", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, model.New("alice", "empty", nil)))

		got, err := repo.GetByAuthorAndName(ctx, "alice", "empty")
		require.NoError(t, err)
		assert.NotNil(t, got.Points())
		assert.Empty(t, got.Points())
	})

	t.Run("duplicate save fails and keeps the first", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, model.New("john", "house", []model.Point{{X: 0, Y: 0}})))

		err := repo.Save(ctx, model.New("john", "house", []model.Point{{X: 5, Y: 5}, {X: 6, Y: 6}}))
		assert.ErrorIs(t, err, model.ErrBlueprintAlreadyExists)
		assert.EqualError(t, err, "Blueprint already exists: john/house")

		got, err := repo.GetByAuthorAndName(ctx, "john", "house")
		require.NoError(t, err)
		assert.Equal(t, []model.Point{{X: 0, Y: 0}}, got.Points())
	})

	t.Run("get by author", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, model.New("john", "house", nil)))
		require.NoError(t, repo.Save(ctx, model.New("john", "garage", []model.Point{{X: 1, Y: 2}})))
		require.NoError(t, repo.Save(ctx, model.New("jane", "garden", nil)))

		bps, err := repo.GetByAuthor(ctx, "john")
		require.NoError(t, err)
		require.Len(t, bps, 2)
		for _, bp := range bps {
			assert.Equal(t, "john", bp.Author())
		}
	})

	t.Run("get by unknown author is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByAuthor(ctx, "nobody")
		assert.ErrorIs(t, err, model.ErrBlueprintNotFound)
		assert.EqualError(t, err, "No blueprints for author: nobody")
	})

	t.Run("get all on empty store", func(t *testing.T) {
		repo := newRepo(t)

		bps, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, bps)
	})

	t.Run("get all", func(t *testing.T) {
		repo := newRepo(t)
		for _, bp := range SeedBlueprints() {
			require.NoError(t, repo.Save(ctx, bp))
		}

		bps, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, bps, len(SeedBlueprints()))
	})

	t.Run("add point appends and keeps order", func(t *testing.T) {
		repo := newRepo(t)
		initial := []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
		require.NoError(t, repo.Save(ctx, model.New("john", "house", initial)))

		require.NoError(t, repo.AddPoint(ctx, "john", "house", 99, 99))

		got, err := repo.GetByAuthorAndName(ctx, "john", "house")
		require.NoError(t, err)
		points := got.Points()
		require.Len(t, points, len(initial)+1)
		assert.Equal(t, initial, points[:len(initial)])
		assert.Equal(t, model.Point{X: 99, Y: 99}, points[len(points)-1])
	})

	t.Run("add point to empty blueprint", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, model.New("john", "blank", nil)))

		require.NoError(t, repo.AddPoint(ctx, "john", "blank", 3, 4))

		got, err := repo.GetByAuthorAndName(ctx, "john", "blank")
		require.NoError(t, err)
		assert.Equal(t, []model.Point{{X: 3, Y: 4}}, got.Points())
	})

	t.Run("add point to unknown blueprint is not found", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.AddPoint(ctx, "nobody", "nothing", 1, 1)
		assert.True(t, errors.Is(err, model.ErrBlueprintNotFound))
	})

	t.Run("returned blueprints are copies", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, model.New("john", "house", []model.Point{{X: 0, Y: 0}})))

		got, err := repo.GetByAuthorAndName(ctx, "john", "house")
		require.NoError(t, err)
		got.AddPoint(model.Point{X: 1, Y: 1})

		again, err := repo.GetByAuthorAndName(ctx, "john", "house")
		require.NoError(t, err)
		assert.Equal(t, 1, again.Len())
	})
}
