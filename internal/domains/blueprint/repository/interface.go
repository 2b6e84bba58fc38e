package repository

import (
	"context"

	"blueprints-backend/internal/domains/blueprint/model"
)

// =====================================================
// BLUEPRINT REPOSITORY INTERFACE
// =====================================================

// RepositoryInterface is implemented by the in-memory and PostgreSQL stores.
// Both return copies and report failures with the model sentinels
// (ErrBlueprintNotFound, ErrBlueprintAlreadyExists) wrapped in a BlueprintError.
type RepositoryInterface interface {
	// Save stores a new blueprint. Fails with ErrBlueprintAlreadyExists when
	// (author, name) is taken; nothing is written in that case.
	Save(ctx context.Context, bp model.Blueprint) error

	// GetByAuthorAndName returns the blueprint with all points in insertion order
	GetByAuthorAndName(ctx context.Context, author, name string) (model.Blueprint, error)

	// GetByAuthor fails with ErrBlueprintNotFound when the author has no blueprints
	GetByAuthor(ctx context.Context, author string) ([]model.Blueprint, error)

	// GetAll may return an empty slice, never ErrBlueprintNotFound
	GetAll(ctx context.Context) ([]model.Blueprint, error)

	// AddPoint appends (x, y) to the stored blueprint
	AddPoint(ctx context.Context, author, name string, x, y int) error

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}
