package ai

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/pkg/logger"
)

type Service struct {
	suggester  Suggester
	categories CategoryLister
	cache      Cache
	timeout    time.Duration
	log        *zap.Logger
}

// NewService wires a suggester. cache may be nil.
func NewService(suggester Suggester, categories CategoryLister, cache Cache, timeout time.Duration, log *zap.Logger) *Service {
	return &Service{
		suggester:  suggester,
		categories: categories,
		cache:      cache,
		timeout:    timeout,
		log:        logger.OrNop(log),
	}
}

// Suggest returns nil when no usable suggestion arrives in time. Failures are logged, never returned.
func (s *Service) Suggest(ctx context.Context, text, lang string) *Suggestion {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	key := cacheKey(text, lang)
	if s.cache != nil {
		if hit, ok := s.cache.Get(ctx, key); ok {
			return hit
		}
	}

	active, err := s.categories.List(ctx, true)
	if err != nil {
		s.log.Warn("ai suggestion skipped: categories unavailable", zap.Error(err))
		return nil
	}
	if len(active) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		s   *Suggestion
		err error
	}
	done := make(chan result, 1)
	go func() {
		sug, err := s.suggester.Suggest(ctx, text, lang, active)
		done <- result{sug, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		s.log.Warn("ai suggestion timed out", zap.Duration("timeout", s.timeout))
		return nil
	}
	if res.err != nil {
		s.log.Warn("ai suggestion failed", zap.Error(res.err))
		return nil
	}

	if res.s == nil {
		return nil
	}
	sug := normalize(res.s, active)
	if sug == nil {
		s.log.Warn("ai suggestion discarded: category not active", zap.String("category", res.s.Category))
		return nil
	}
	if s.cache != nil {
		s.cache.Set(context.WithoutCancel(ctx), key, sug)
	}
	return sug
}

// normalize maps the suggested category onto an active one, case-insensitively, and
// drops an inverted or negative price range.
func normalize(sug *Suggestion, active []domain.CategoryItem) *Suggestion {
	if sug == nil {
		return nil
	}
	for _, c := range active {
		if strings.EqualFold(strings.TrimSpace(sug.Category), c.Name) {
			out := *sug
			out.Category = c.Name
			if r := out.EstimatedPriceRange; r.Min < 0 || r.Max < r.Min {
				out.EstimatedPriceRange = PriceRange{}
			}
			return &out
		}
	}
	return nil
}
