package transform

import (
	"github.com/pable/go-scout-elt/internal/model"
	"github.com/pable/go-scout-elt/internal/rules"
)

// FixXG nulls an expected-goals value that is negative or exceeds shots.
func FixXG(s model.PlayerMatchStat) model.PlayerMatchStat {
	if s.XG == nil {
		return s
	}
	if !rules.XGNonNegative(*s.XG) {
		s.XG = nil
		return s
	}
	if !rules.XGWithinShots(*s.XG, s.Shots) {
		s.XG = nil
	}
	return s
}

// DeriveMetrics sets goal_contribution and g_xg. g_xg is nil when xg is nil.
func DeriveMetrics(s model.PlayerMatchStat) model.PlayerMatchStat {
	s.GoalContribution = s.Goals + s.Assists
	s.GXG = nil
	if s.XG != nil {
		v := float64(s.Goals) - *s.XG
		s.GXG = &v
	}
	return s
}
