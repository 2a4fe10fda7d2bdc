package aggregator

import (
	"math"
	"sort"

	"github.com/pable/go-scout-elt/internal/model"
)

// DefaultTopN is the number of players kept per team by TopN.
const DefaultTopN = 3

// round2 rounds to two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// per90 returns sum/minutes*90, or nil when minutes is zero.
func per90(sum float64, minutes int) *float64 {
	if minutes <= 0 {
		return nil
	}
	v := round2(sum / float64(minutes) * 90)
	return &v
}

// ratio returns num/den, or nil when den is zero.
func ratio(num, den int) *float64 {
	if den <= 0 {
		return nil
	}
	v := round2(float64(num) / float64(den))
	return &v
}

// ---- Player aggregate ----

// PlayerAggregates sums every player's per-match stats and derives per-90
// rates and accuracy ratios. Players without stats are kept with zero sums
// and nil rates. Stats of unknown players are ignored. The result is in
// player_id order.
func PlayerAggregates(players []model.Player, teams []model.Team, stats []model.PlayerMatchStat) []model.PlayerAggregate {
	teamNames := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNames[t.TeamID] = t.Name
	}

	byPlayer := make(map[string]*model.PlayerAggregate, len(players))
	out := make([]model.PlayerAggregate, len(players))
	sorted := append([]model.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PlayerID < sorted[j].PlayerID })
	for i, p := range sorted {
		out[i] = model.PlayerAggregate{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			TeamID:   p.TeamID,
			TeamName: teamNames[p.TeamID],
			Position: p.Position,
			Age:      p.Age,
		}
		byPlayer[p.PlayerID] = &out[i]
	}

	for _, s := range stats {
		a, ok := byPlayer[s.PlayerID]
		if !ok {
			continue
		}
		a.Matches++
		a.MinutesPlayed += s.MinutesPlayed
		a.Goals += s.Goals
		a.Assists += s.Assists
		a.Shots += s.Shots
		a.ShotsOnTarget += s.ShotsOnTarget
		a.PassesAttempted += s.PassesAttempted
		a.PassesCompleted += s.PassesCompleted
		a.KeyPasses += s.KeyPasses
		a.Tackles += s.Tackles
		a.Interceptions += s.Interceptions
		a.DuelsWon += s.DuelsWon
		a.DuelsLost += s.DuelsLost
		a.FoulsCommitted += s.FoulsCommitted
		a.YellowCards += s.YellowCards
		a.RedCards += s.RedCards
		a.GoalContribution += s.GoalContribution
		if s.XG != nil {
			a.XG += *s.XG
		}
		if s.XA != nil {
			a.XA += *s.XA
		}
		if s.GXG != nil {
			a.GXG += *s.GXG
		}
	}

	for i := range out {
		deriveRates(&out[i])
	}
	return out
}

func deriveRates(a *model.PlayerAggregate) {
	m := a.MinutesPlayed
	a.Goals90 = per90(float64(a.Goals), m)
	a.Assists90 = per90(float64(a.Assists), m)
	a.ShotAccuracy = ratio(a.ShotsOnTarget, a.Shots)
	a.PassesAttempted90 = per90(float64(a.PassesAttempted), m)
	a.PassesCompleted90 = per90(float64(a.PassesCompleted), m)
	a.KeyPasses90 = per90(float64(a.KeyPasses), m)
	a.PassAccuracy = ratio(a.PassesCompleted, a.PassesAttempted)
	a.Tackles90 = per90(float64(a.Tackles), m)
	a.Interceptions90 = per90(float64(a.Interceptions), m)
	a.DuelWinRate = ratio(a.DuelsWon, a.DuelsWon+a.DuelsLost)
	a.Fouls90 = per90(float64(a.FoulsCommitted), m)
	a.YellowCards90 = per90(float64(a.YellowCards), m)
	a.RedCards90 = per90(float64(a.RedCards), m)
	a.XG90 = per90(a.XG, m)
	a.XA90 = per90(a.XA, m)
	a.GoalContribution90 = per90(float64(a.GoalContribution), m)
	a.GXG90 = per90(a.GXG, m)
	a.XG, a.XA, a.GXG = round2(a.XG), round2(a.XA), round2(a.GXG)
}

// SortForReport orders aggregates by team name, then goal contribution
// descending. Ties keep their current order.
func SortForReport(aggs []model.PlayerAggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].TeamName != aggs[j].TeamName {
			return aggs[i].TeamName < aggs[j].TeamName
		}
		return aggs[i].GoalContribution > aggs[j].GoalContribution
	})
}

// FilterTeam returns the aggregates of one team, or all of them when teamID
// is empty.
func FilterTeam(aggs []model.PlayerAggregate, teamID string) []model.PlayerAggregate {
	if teamID == "" {
		return aggs
	}
	var out []model.PlayerAggregate
	for _, a := range aggs {
		if a.TeamID == teamID {
			out = append(out, a)
		}
	}
	return out
}

// ---- Team summary ----

// mean accumulates the average of the non-nil values it sees.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v != nil {
		m.sum += *v
		m.n++
	}
}

func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := round2(m.sum / float64(m.n))
	return &v
}

type teamAcc struct {
	summary model.TeamSummary
	age     mean
	rates   [8]mean
}

// TeamSummaries rolls player aggregates up to their teams. Counting stats
// are summed; rate columns are the mean of the per-player rates, ignoring
// players whose rate is nil. Only teams with at least one player appear,
// ordered by team name. A non-empty teamID narrows the result to that team.
func TeamSummaries(aggs []model.PlayerAggregate, teams []model.Team, teamID string) []model.TeamSummary {
	byID := make(map[string]model.Team, len(teams))
	for _, t := range teams {
		byID[t.TeamID] = t
	}

	accs := map[string]*teamAcc{}
	for _, a := range FilterTeam(aggs, teamID) {
		t, ok := byID[a.TeamID]
		if !ok {
			continue
		}
		acc, ok := accs[t.TeamID]
		if !ok {
			acc = &teamAcc{summary: model.TeamSummary{TeamID: t.TeamID, League: t.League, TeamName: t.Name}}
			accs[t.TeamID] = acc
		}
		s := &acc.summary
		s.Goals += a.Goals
		s.Assists += a.Assists
		s.MinutesPlayed += a.MinutesPlayed
		s.Shots += a.Shots
		s.ShotsOnTarget += a.ShotsOnTarget
		s.PassesAttempted += a.PassesAttempted
		s.PassesCompleted += a.PassesCompleted
		s.KeyPasses += a.KeyPasses
		s.Tackles += a.Tackles
		s.Interceptions += a.Interceptions
		s.DuelsWon += a.DuelsWon
		s.DuelsLost += a.DuelsLost
		s.FoulsCommitted += a.FoulsCommitted
		s.YellowCards += a.YellowCards
		s.RedCards += a.RedCards
		s.XG += a.XG
		s.XA += a.XA
		s.GoalContribution += a.GoalContribution
		s.GXG += a.GXG

		if a.Age != nil {
			age := float64(*a.Age)
			acc.age.add(&age)
		}
		for i, r := range []*float64{
			a.ShotAccuracy, a.PassAccuracy, a.DuelWinRate, a.Goals90,
			a.Assists90, a.XG90, a.XA90, a.GoalContribution90,
		} {
			acc.rates[i].add(r)
		}
	}

	out := make([]model.TeamSummary, 0, len(accs))
	for _, acc := range accs {
		s := acc.summary
		s.XG, s.XA, s.GXG = round2(s.XG), round2(s.XA), round2(s.GXG)
		s.AvgAge = acc.age.value()
		s.AvgShotAccuracy = acc.rates[0].value()
		s.AvgPassAccuracy = acc.rates[1].value()
		s.AvgDuelWinRate = acc.rates[2].value()
		s.AvgGoals90 = acc.rates[3].value()
		s.AvgAssists90 = acc.rates[4].value()
		s.AvgXG90 = acc.rates[5].value()
		s.AvgXA90 = acc.rates[6].value()
		s.AvgGoalContribution90 = acc.rates[7].value()
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

// ---- Top N ----

// TopN ranks players within each team by goal contribution, highest first,
// and keeps the first n. Ranks are ordinal: equal contributions still get
// distinct ranks, in the order the aggregates were given. The result is
// ordered by team name, then rank. A non-empty teamID narrows the result to
// that team.
func TopN(aggs []model.PlayerAggregate, teams []model.Team, n int, teamID string) []model.TopPlayer {
	if n <= 0 {
		return nil
	}
	leagues := make(map[string]string, len(teams))
	for _, t := range teams {
		leagues[t.TeamID] = t.League
	}

	byTeam := map[string][]model.PlayerAggregate{}
	var order []string
	for _, a := range aggs {
		if _, ok := byTeam[a.TeamID]; !ok {
			order = append(order, a.TeamID)
		}
		byTeam[a.TeamID] = append(byTeam[a.TeamID], a)
	}

	var out []model.TopPlayer
	for _, id := range order {
		members := byTeam[id]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].GoalContribution > members[j].GoalContribution
		})
		for rank, a := range members {
			if rank >= n {
				break
			}
			out = append(out, model.TopPlayer{
				League:           leagues[a.TeamID],
				TeamID:           a.TeamID,
				TeamName:         a.TeamName,
				Ranking:          rank + 1,
				PlayerID:         a.PlayerID,
				PlayerName:       a.Name,
				Position:         a.Position,
				Age:              a.Age,
				MinutesPlayed:    a.MinutesPlayed,
				Goals:            a.Goals,
				Assists:          a.Assists,
				GoalContribution: a.GoalContribution,
			})
		}
	}

	if teamID != "" {
		filtered := out[:0]
		for _, p := range out {
			if p.TeamID == teamID {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].Ranking < out[j].Ranking
	})
	return out
}
