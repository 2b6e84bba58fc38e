package service

import (
	"context"

	"blueprints-backend/internal/domains/blueprint/model"
)

// =====================================================
// BLUEPRINT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// GetAllBlueprints returns every stored blueprint, unfiltered
	GetAllBlueprints(ctx context.Context) ([]model.Blueprint, error)

	// GetBlueprintsByAuthor returns the author's blueprints, unfiltered.
	// Errors: ErrBlueprintNotFound
	GetBlueprintsByAuthor(ctx context.Context, author string) ([]model.Blueprint, error)

	// GetBlueprint returns the blueprint with the active filter applied to its points.
	// Errors: ErrBlueprintNotFound
	GetBlueprint(ctx context.Context, author, name string) (model.Blueprint, error)

	// AddNewBlueprint stores a new blueprint.
	// Errors: ErrBlueprintAlreadyExists
	AddNewBlueprint(ctx context.Context, bp model.Blueprint) error

	// AddPoint appends a point to an existing blueprint.
	// Errors: ErrBlueprintNotFound
	AddPoint(ctx context.Context, author, name string, x, y int) error
}
