package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"blueprints-backend/internal/domains/blueprint/filter"
	"blueprints-backend/internal/domains/blueprint/model"
	"blueprints-backend/internal/domains/blueprint/repository"
	"blueprints-backend/internal/infrastructure/monitoring"
)

const serviceName = "blueprint"

type blueprintService struct {
	repo    repository.RepositoryInterface
	filter  filter.Filter
	metrics *monitoring.Metrics // may be nil
}

// NewBlueprintService wires the store and the single active filter.
// A nil filter means identity.
func NewBlueprintService(
	repo repository.RepositoryInterface,
	f filter.Filter,
	metrics *monitoring.Metrics,
) ServiceInterface {
	if f == nil {
		f = filter.Identity{}
	}
	return &blueprintService{
		repo:    repo,
		filter:  f,
		metrics: metrics,
	}
}

func (s *blueprintService) GetAllBlueprints(ctx context.Context) ([]model.Blueprint, error) {
	timer := monitoring.NewTimer(s.metrics, serviceName, "GetAllBlueprints")

	bps, err := s.repo.GetAll(ctx)
	timer.StopWithError(err)
	return bps, err
}

func (s *blueprintService) GetBlueprintsByAuthor(ctx context.Context, author string) ([]model.Blueprint, error) {
	timer := monitoring.NewTimer(s.metrics, serviceName, "GetBlueprintsByAuthor")

	bps, err := s.repo.GetByAuthor(ctx, author)
	timer.StopWithError(err)
	return bps, err
}

func (s *blueprintService) GetBlueprint(ctx context.Context, author, name string) (model.Blueprint, error) {
	timer := monitoring.NewTimer(s.metrics, serviceName, "GetBlueprint")

	bp, err := s.repo.GetByAuthorAndName(ctx, author, name)
	timer.StopWithError(err)
	if err != nil {
		return model.Blueprint{}, err
	}

	filtered := s.filter.Apply(bp)
	log.Debug().
		Str("author", author).
		Str("name", name).
		Str("filter", s.filter.Name()).
		Int("points_in", bp.Len()).
		Int("points_out", filtered.Len()).
		Msg("Blueprint filtered")

	return filtered, nil
}

func (s *blueprintService) AddNewBlueprint(ctx context.Context, bp model.Blueprint) error {
	timer := monitoring.NewTimer(s.metrics, serviceName, "AddNewBlueprint")

	err := s.repo.Save(ctx, bp)
	timer.StopWithError(err)
	if err != nil {
		return err
	}

	log.Info().
		Str("author", bp.Author()).
		Str("name", bp.Name()).
		Int("points", bp.Len()).
		Msg("Blueprint created")
	return nil
}

func (s *blueprintService) AddPoint(ctx context.Context, author, name string, x, y int) error {
	timer := monitoring.NewTimer(s.metrics, serviceName, "AddPoint")

	err := s.repo.AddPoint(ctx, author, name, x, y)
	timer.StopWithError(err)
	if err != nil {
		return err
	}

	log.Info().
		Str("author", author).
		Str("name", name).
		Int("x", x).
		Int("y", y).
		Msg("Point added")
	return nil
}
