package repository

import (
	"context"

	"gorm.io/gorm"
)

// StatsRepository runs read-only aggregate counts for the admin dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type groupCount struct {
	Bucket string
	Count  int64
}

// CountBy groups rows of model by column. Missing groups are absent from the map.
func (r *StatsRepository) CountBy(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.Count
	}
	return out, nil
}

func (r *StatsRepository) Count(ctx context.Context, model any, where string, args ...any) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Where(where, args...).Count(&n).Error
	return n, err
}
