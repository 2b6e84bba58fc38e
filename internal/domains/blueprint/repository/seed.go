package repository

import "blueprints-backend/internal/domains/blueprint/model"

// SeedBlueprints is the demo data the in-memory store starts with
func SeedBlueprints() []model.Blueprint {
	return []model.Blueprint{
		model.New("john", "house", []model.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		}),
		model.New("john", "garage", []model.Point{
			{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15},
		}),
		model.New("jane", "garden", []model.Point{
			{X: 2, Y: 2}, {X: 3, Y: 4}, {X: 6, Y: 7},
		}),
	}
}
