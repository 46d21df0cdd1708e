package service

import (
	"sort"

	"github.com/SalahElkadim/sabrlinguaa-sub000/config"
)

// LevelService derives a proficiency label from a composite percentage.
// Thresholds come from configuration, not from the aggregation code.
type LevelService interface {
	LevelForPercentage(percentage float64) string
}

type levelService struct {
	// thresholds sorted by descending MinPercentage; the first entry whose
	// minimum the percentage reaches wins.
	thresholds []config.LevelThreshold
}

func NewLevelService(cfg *config.Config) LevelService {
	thresholds := make([]config.LevelThreshold, len(cfg.Placement.Levels))
	copy(thresholds, cfg.Placement.Levels)
	sort.Slice(thresholds, func(i, j int) bool {
		return thresholds[i].MinPercentage > thresholds[j].MinPercentage
	})
	return &levelService{thresholds: thresholds}
}

func (s *levelService) LevelForPercentage(percentage float64) string {
	for _, t := range s.thresholds {
		if percentage >= t.MinPercentage {
			return t.Label
		}
	}
	if len(s.thresholds) > 0 {
		return s.thresholds[len(s.thresholds)-1].Label
	}
	return "not-tested"
}
