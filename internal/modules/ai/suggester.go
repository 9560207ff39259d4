// Package ai suggests a service category and a rough price range for a free-text job description.
// Suggestions are advisory: a slow or failing model never blocks booking creation.
package ai

import (
	"context"

	"homeservices/internal/domain"
)

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type Suggestion struct {
	Category            string     `json:"category"`
	Reasoning           string     `json:"reasoning"`
	EstimatedPriceRange PriceRange `json:"estimatedPriceRange"`
}

// Suggester picks one of the given categories for the description.
type Suggester interface {
	Suggest(ctx context.Context, text, lang string, categories []domain.CategoryItem) (*Suggestion, error)
}

type CategoryLister interface {
	List(ctx context.Context, activeOnly bool) ([]domain.CategoryItem, error)
}
