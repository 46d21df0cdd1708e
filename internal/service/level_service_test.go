package service

import (
	"testing"

	"github.com/SalahElkadim/sabrlinguaa-sub000/config"
)

func newDefaultLevelService() LevelService {
	return NewLevelService(&config.Config{
		Placement: config.Placement{Levels: config.DefaultLevels()},
	})
}

func TestLevelForPercentage(t *testing.T) {
	svc := newDefaultLevelService()

	tests := []struct {
		percentage float64
		want       string
	}{
		{0, "not-tested"},
		{19.9, "not-tested"},
		{20, "elementary"},
		{39.9, "elementary"},
		{40, "pre-intermediate"},
		{60, "intermediate"},
		{66.7, "intermediate"},
		{80, "upper-intermediate"},
		{100, "upper-intermediate"},
	}

	for _, tt := range tests {
		if got := svc.LevelForPercentage(tt.percentage); got != tt.want {
			t.Errorf("LevelForPercentage(%v) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}

func TestLevelForPercentageUnorderedConfig(t *testing.T) {
	// Threshold ordering in the config file must not matter.
	svc := NewLevelService(&config.Config{
		Placement: config.Placement{Levels: []config.LevelThreshold{
			{MinPercentage: 50, Label: "upper"},
			{MinPercentage: 0, Label: "lower"},
		}},
	})
	if got := svc.LevelForPercentage(75); got != "upper" {
		t.Errorf("LevelForPercentage(75) = %q, want %q", got, "upper")
	}
	if got := svc.LevelForPercentage(10); got != "lower" {
		t.Errorf("LevelForPercentage(10) = %q, want %q", got, "lower")
	}
}
