package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blueprints-backend/internal/domains/blueprint/filter"
	"blueprints-backend/internal/domains/blueprint/model"
	"blueprints-backend/internal/domains/blueprint/repository"
	"blueprints-backend/internal/infrastructure/monitoring"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, bp model.Blueprint) error {
	return m.Called(ctx, bp).Error(0)
}

func (m *mockRepository) GetByAuthorAndName(ctx context.Context, author, name string) (model.Blueprint, error) {
	args := m.Called(ctx, author, name)
	return args.Get(0).(model.Blueprint), args.Error(1)
}

func (m *mockRepository) GetByAuthor(ctx context.Context, author string) ([]model.Blueprint, error) {
	args := m.Called(ctx, author)
	bps, _ := args.Get(0).([]model.Blueprint)
	return bps, args.Error(1)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]model.Blueprint, error) {
	args := m.Called(ctx)
	bps, _ := args.Get(0).([]model.Blueprint)
	return bps, args.Error(1)
}

func (m *mockRepository) AddPoint(ctx context.Context, author, name string, x, y int) error {
	return m.Called(ctx, author, name, x, y).Error(0)
}

func (m *mockRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newSeededService(t *testing.T, filterName string) ServiceInterface {
	t.Helper()
	f, err := filter.New(filterName)
	require.NoError(t, err)
	return NewBlueprintService(repository.NewMemoryRepository(repository.SeedBlueprints()...), f, nil)
}

func TestGetAllBlueprints_Seeded(t *testing.T) {
	svc := newSeededService(t, filter.NameIdentity)

	bps, err := svc.GetAllBlueprints(t.Context())

	require.NoError(t, err)
	assert.Len(t, bps, 3)
}

func TestGetBlueprintsByAuthor(t *testing.T) {
	svc := newSeededService(t, filter.NameIdentity)

	bps, err := svc.GetBlueprintsByAuthor(t.Context(), "john")
	require.NoError(t, err)
	assert.Len(t, bps, 2)
	for _, bp := range bps {
		assert.Equal(t, "john", bp.Author())
	}

	_, err = svc.GetBlueprintsByAuthor(t.Context(), "nobody")
	assert.ErrorIs(t, err, model.ErrBlueprintNotFound)
	assert.EqualError(t, err, "No blueprints for author: nobody")
}

func TestGetBlueprint_AppliesFilter(t *testing.T) {
	tests := []struct {
		filter string
		want   []model.Point
	}{
		{filter.NameIdentity, []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}},
		{filter.NameRedundancy, []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}},
		{filter.NameUndersampling, []model.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			svc := newSeededService(t, tt.filter)

			bp, err := svc.GetBlueprint(t.Context(), "john", "house")

			require.NoError(t, err)
			assert.Equal(t, "john", bp.Author())
			assert.Equal(t, "house", bp.Name())
			assert.Equal(t, tt.want, bp.Points())
		})
	}
}

func TestGetBlueprint_DoesNotMutateStore(t *testing.T) {
	repo := repository.NewMemoryRepository(
		model.New("a", "dup", []model.Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 2}}),
	)
	svc := NewBlueprintService(repo, filter.Redundancy{}, nil)

	got, err := svc.GetBlueprint(t.Context(), "a", "dup")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())

	stored, err := repo.GetByAuthorAndName(t.Context(), "a", "dup")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Len())
}

func TestListingsAreNotFiltered(t *testing.T) {
	svc := newSeededService(t, filter.NameUndersampling)

	bps, err := svc.GetBlueprintsByAuthor(t.Context(), "john")
	require.NoError(t, err)

	for _, bp := range bps {
		if bp.Name() == "house" {
			assert.Equal(t, 4, bp.Len())
		}
	}
}

func TestGetBlueprint_NotFound(t *testing.T) {
	svc := newSeededService(t, filter.NameIdentity)

	_, err := svc.GetBlueprint(t.Context(), "john", "castle")

	assert.ErrorIs(t, err, model.ErrBlueprintNotFound)
	assert.EqualError(t, err, "Blueprint not found: john/castle")
}

func TestAddNewBlueprint(t *testing.T) {
	svc := newSeededService(t, filter.NameIdentity)
	bp := model.New("ana", "bridge", []model.Point{{X: 1, Y: 2}})

	require.NoError(t, svc.AddNewBlueprint(t.Context(), bp))

	got, err := svc.GetBlueprint(t.Context(), "ana", "bridge")
	require.NoError(t, err)
	assert.Equal(t, []model.Point{{X: 1, Y: 2}}, got.Points())

	err = svc.AddNewBlueprint(t.Context(), model.New("ana", "bridge", nil))
	assert.ErrorIs(t, err, model.ErrBlueprintAlreadyExists)
}

func TestAddPoint(t *testing.T) {
	svc := newSeededService(t, filter.NameIdentity)

	require.NoError(t, svc.AddPoint(t.Context(), "jane", "garden", 9, 9))

	bp, err := svc.GetBlueprint(t.Context(), "jane", "garden")
	require.NoError(t, err)
	require.Equal(t, 4, bp.Len())
	assert.Equal(t, model.Point{X: 9, Y: 9}, bp.Points()[3])

	err = svc.AddPoint(t.Context(), "jane", "pond", 1, 1)
	assert.ErrorIs(t, err, model.ErrBlueprintNotFound)
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	repo := new(mockRepository)
	repo.On("GetAll", mock.Anything).Return(nil, boom)
	repo.On("GetByAuthorAndName", mock.Anything, "a", "b").Return(model.Blueprint{}, boom)
	repo.On("Save", mock.Anything, mock.Anything).Return(boom)
	repo.On("AddPoint", mock.Anything, "a", "b", 1, 2).Return(boom)

	svc := NewBlueprintService(repo, nil, nil)
	ctx := t.Context()

	_, err := svc.GetAllBlueprints(ctx)
	assert.Same(t, boom, err)

	_, err = svc.GetBlueprint(ctx, "a", "b")
	assert.Same(t, boom, err)

	assert.Same(t, boom, svc.AddNewBlueprint(ctx, model.New("a", "b", nil)))
	assert.Same(t, boom, svc.AddPoint(ctx, "a", "b", 1, 2))

	repo.AssertExpectations(t)
}

func TestServiceRecordsMetrics(t *testing.T) {
	m := monitoring.NewMetrics(prometheus.NewRegistry())
	svc := NewBlueprintService(repository.NewMemoryRepository(repository.SeedBlueprints()...), nil, m)

	_, _ = svc.GetBlueprint(t.Context(), "john", "house")
	_, _ = svc.GetBlueprint(t.Context(), "john", "castle")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues(serviceName, "GetBlueprint", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues(serviceName, "GetBlueprint", "not_found")))
}
