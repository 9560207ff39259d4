package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"homeservices/internal/domain"
)

var defaultKeywords = map[string][]string{
	"Cleaning":   {"clean", "dust", "vacuum", "mop", "carpet", "window", "tidy", "laundry"},
	"Plumbing":   {"pipe", "leak", "tap", "faucet", "drain", "toilet", "sink", "boiler", "water heater", "plumb"},
	"Electrical": {"electric", "wiring", "socket", "outlet", "light", "lamp", "fuse", "switch", "breaker"},
	"Painting":   {"paint", "wall", "ceiling", "wallpaper", "primer", "colour", "color"},
	"Moving":     {"move", "moving", "furniture", "boxes", "relocate", "truck", "van", "haul"},
	"Gardening":  {"garden", "lawn", "grass", "hedge", "tree", "weed", "plant", "mow"},
}

// KeywordSuggester scores categories by keyword hits. It needs no network and backs
// the service when no model is configured.
type KeywordSuggester struct {
	keywords map[string][]string
}

func NewKeywordSuggester(extra map[string][]string) *KeywordSuggester {
	kw := make(map[string][]string, len(defaultKeywords)+len(extra))
	for k, v := range defaultKeywords {
		kw[strings.ToLower(k)] = v
	}
	for k, v := range extra {
		kw[strings.ToLower(k)] = append(kw[strings.ToLower(k)], v...)
	}
	return &KeywordSuggester{keywords: kw}
}

func (k *KeywordSuggester) Suggest(ctx context.Context, text, _ string, categories []domain.CategoryItem) (*Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })

	var (
		best      *domain.CategoryItem
		bestScore int
		hits      []string
	)
	for i := range categories {
		c := &categories[i]
		score, matched := k.score(text, words, c.Name)
		if score > bestScore {
			best, bestScore, hits = c, score, matched
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no category matches the description")
	}

	return &Suggestion{
		Category:            best.Name,
		Reasoning:           "matched keywords: " + strings.Join(hits, ", "),
		EstimatedPriceRange: estimate(best.BasePrice),
	}, nil
}

func (k *KeywordSuggester) score(text string, words []string, category string) (int, []string) {
	name := strings.ToLower(category)
	terms := append([]string{name}, k.keywords[name]...)

	var (
		score   int
		matched []string
	)
	for _, term := range terms {
		if strings.Contains(term, " ") {
			if strings.Contains(text, term) {
				score += 2
				matched = append(matched, term)
			}
			continue
		}
		for _, w := range words {
			if strings.HasPrefix(w, term) {
				score++
				matched = append(matched, term)
				break
			}
		}
	}
	return score, matched
}

// estimate spreads a category's base price into a range of 0.8x to 1.5x.
func estimate(base int64) PriceRange {
	if base <= 0 {
		return PriceRange{}
	}
	return PriceRange{Min: base * 8 / 10, Max: base * 3 / 2}
}
