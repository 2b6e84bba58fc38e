package model

import (
	"fmt"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// PointRequest - body of PUT /blueprints/:author/:name/points and an element of
// CreateBlueprintRequest.Points. Pointers let us tell a missing coordinate from 0.
type PointRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

func (r PointRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.X, coordinateRange("x")...),
		validation.Field(&r.Y, coordinateRange("y")...),
	)
}

// coordinateRange keeps coordinates within the INTEGER columns of the
// PostgreSQL store so both backends accept the same points
func coordinateRange(field string) []validation.Rule {
	msg := field + " must be a 32-bit integer"
	return []validation.Rule{
		validation.NotNil.Error(field + " is required"),
		validation.Min(math.MinInt32).Error(msg),
		validation.Max(math.MaxInt32).Error(msg),
	}
}

// ToPoint assumes Validate passed
func (r PointRequest) ToPoint() Point {
	return Point{X: *r.X, Y: *r.Y}
}

// CreateBlueprintRequest - POST /blueprints
type CreateBlueprintRequest struct {
	Author string         `json:"author"`
	Name   string         `json:"name"`
	Points []PointRequest `json:"points"`
}

func (r CreateBlueprintRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Author,
			validation.Required.Error("author must not be blank"),
			validation.By(notBlank("author")),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name must not be blank"),
			validation.By(notBlank("name")),
		),
	)
	if err != nil {
		return err
	}

	for i, p := range r.Points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("points[%d]: %w", i, err)
		}
	}
	return nil
}

// ToEntity converts the request into a domain blueprint. Missing points
// become an empty sequence.
func (r CreateBlueprintRequest) ToEntity() Blueprint {
	points := make([]Point, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, p.ToPoint())
	}
	return New(r.Author, r.Name, points)
}

// notBlank rejects whitespace-only strings, which validation.Required lets through
func notBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be blank", field)
		}
		return nil
	}
}
