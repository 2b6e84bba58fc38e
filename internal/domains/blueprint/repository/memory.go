package repository

import (
	"context"
	"sort"
	"sync"

	"blueprints-backend/internal/domains/blueprint/model"
)

// memoryRepository keeps blueprints in process memory. Nothing survives a restart.
type memoryRepository struct {
	mu         sync.RWMutex
	blueprints map[model.Key]model.Blueprint
}

// NewMemoryRepository returns an isolated store pre-filled with seed.
// Duplicate seeds keep the first occurrence.
func NewMemoryRepository(seed ...model.Blueprint) RepositoryInterface {
	repo := &memoryRepository{
		blueprints: make(map[model.Key]model.Blueprint, len(seed)),
	}
	for _, bp := range seed {
		if _, exists := repo.blueprints[bp.Key()]; !exists {
			repo.blueprints[bp.Key()] = bp.WithPoints(bp.Points())
		}
	}
	return repo
}

func (r *memoryRepository) Save(ctx context.Context, bp model.Blueprint) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blueprints[bp.Key()]; exists {
		return model.NewBlueprintAlreadyExistsError(bp.Author(), bp.Name())
	}

	r.blueprints[bp.Key()] = bp.WithPoints(bp.Points())
	return nil
}

func (r *memoryRepository) GetByAuthorAndName(ctx context.Context, author, name string) (model.Blueprint, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	bp, ok := r.blueprints[model.Key{Author: author, Name: name}]
	if !ok {
		return model.Blueprint{}, model.NewBlueprintNotFoundError(author, name)
	}
	return bp.WithPoints(bp.Points()), nil
}

func (r *memoryRepository) GetByAuthor(ctx context.Context, author string) ([]model.Blueprint, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Blueprint
	for key, bp := range r.blueprints {
		if key.Author == author {
			out = append(out, bp.WithPoints(bp.Points()))
		}
	}
	if len(out) == 0 {
		return nil, model.NewAuthorNotFoundError(author)
	}

	sortBlueprints(out)
	return out, nil
}

func (r *memoryRepository) GetAll(ctx context.Context) ([]model.Blueprint, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Blueprint, 0, len(r.blueprints))
	for _, bp := range r.blueprints {
		out = append(out, bp.WithPoints(bp.Points()))
	}

	sortBlueprints(out)
	return out, nil
}

func (r *memoryRepository) AddPoint(ctx context.Context, author, name string, x, y int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.Key{Author: author, Name: name}
	bp, ok := r.blueprints[key]
	if !ok {
		return model.NewBlueprintNotFoundError(author, name)
	}

	// bp shares its backing array with the map entry; append through a copy
	// so a reader holding an older value never observes the write
	updated := bp.WithPoints(bp.Points())
	updated.AddPoint(model.NewPoint(x, y))
	r.blueprints[key] = updated
	return nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return nil
}

// sortBlueprints orders by author then name so listings are deterministic
func sortBlueprints(bps []model.Blueprint) {
	sort.Slice(bps, func(i, j int) bool {
		if bps[i].Author() != bps[j].Author() {
			return bps[i].Author() < bps[j].Author()
		}
		return bps[i].Name() < bps[j].Name()
	})
}
