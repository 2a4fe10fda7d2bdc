package transform

import (
	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
)

// Natural-key and foreign-key columns each entity cannot be cleaned without.
var requiredColumns = map[string][]string{
	model.EntityTeams:            {"team_id"},
	model.EntityPlayers:          {"player_id", "team_id"},
	model.EntityMatches:          {"match_id"},
	model.EntityPlayerMatchStats: {"player_id", "match_id"},
	model.EntityMatchEvents:      {"event_id", "match_id", "team_id", "player_id"},
}

// usable reports whether t can be cleaned, logging why not.
func (n *Normalizer) usable(entity string, t *landing.Table) bool {
	if t.Empty() {
		n.log.Warn("no input data, nothing to transform", "entity", entity)
		return false
	}
	for _, col := range requiredColumns[entity] {
		if !t.HasColumn(col) {
			n.log.Error("transform failed: missing key column", "entity", entity, "column", col)
			return false
		}
	}
	return true
}

func (n *Normalizer) logResult(entity string, in, out int) {
	n.log.Info("entity transformed", "entity", entity, "rows_in", in, "rows_out", out, "rows_dropped", in-out)
}

// Teams deduplicates teams by team_id.
func (n *Normalizer) Teams(t *landing.Table) []model.Team {
	if !n.usable(model.EntityTeams, t) {
		return nil
	}
	teams := decodeAll(t, decodeTeam)
	out := DedupeByKey(teams, func(x model.Team) string { return x.TeamID })
	n.logResult(model.EntityTeams, len(teams), len(out))
	return out
}

// Players normalizes position and dates, drops players of unknown teams,
// deduplicates by player_id and derives age.
func (n *Normalizer) Players(t *landing.Table, teams model.KeySet) []model.Player {
	if !n.usable(model.EntityPlayers, t) {
		return nil
	}
	players := decodeAll(t, decodePlayer)
	for i := range players {
		p := &players[i]
		p.Position = n.NormalizePosition(p.Position)
		p.DateOfBirth = n.normalizeOptDate(p.DateOfBirth)
		p.ContractUntil = n.normalizeOptDate(p.ContractUntil)
	}
	out := FilterOrphans(players, ForeignKey[model.Player]{
		Column: "team_id", Value: func(x model.Player) string { return x.TeamID }, Parents: teams,
	})
	out = DedupeByKey(out, func(x model.Player) string { return x.PlayerID })
	for i := range out {
		out[i].Age = n.DeriveAge(out[i].DateOfBirth)
	}
	n.logResult(model.EntityPlayers, len(players), len(out))
	return out
}

// Matches normalizes match_date and deduplicates by match_id.
func (n *Normalizer) Matches(t *landing.Table) []model.Match {
	if !n.usable(model.EntityMatches, t) {
		return nil
	}
	matches := decodeAll(t, decodeMatch)
	for i := range matches {
		matches[i].MatchDate = n.normalizeOptDate(matches[i].MatchDate)
	}
	out := DedupeByKey(matches, func(x model.Match) string { return x.MatchID })
	n.logResult(model.EntityMatches, len(matches), len(out))
	return out
}

// PlayerMatchStats drops rows of unknown players or matches, nulls invalid
// xg, deduplicates by (player_id, match_id) and derives contribution metrics.
func (n *Normalizer) PlayerMatchStats(t *landing.Table, players, matches model.KeySet) []model.PlayerMatchStat {
	if !n.usable(model.EntityPlayerMatchStats, t) {
		return nil
	}
	stats := decodeAll(t, decodeStat)
	out := FilterOrphans(stats,
		ForeignKey[model.PlayerMatchStat]{
			Column: "player_id", Value: func(x model.PlayerMatchStat) string { return x.PlayerID }, Parents: players,
		},
		ForeignKey[model.PlayerMatchStat]{
			Column: "match_id", Value: func(x model.PlayerMatchStat) string { return x.MatchID }, Parents: matches,
		},
	)
	nulled := 0
	for i := range out {
		fixed := FixXG(out[i])
		if fixed.XG == nil && out[i].XG != nil {
			nulled++
		}
		out[i] = fixed
	}
	if nulled > 0 {
		n.log.Warn("invalid xg values set to null", "rows", nulled)
	}
	out = DedupeByKey(out, model.PlayerMatchStat.Key)
	for i := range out {
		out[i] = DeriveMetrics(out[i])
	}
	n.logResult(model.EntityPlayerMatchStats, len(stats), len(out))
	return out
}

// MatchEvents drops events whose match, team or player is unknown and
// deduplicates by event_id.
func (n *Normalizer) MatchEvents(t *landing.Table, matches, teams, players model.KeySet) []model.MatchEvent {
	if !n.usable(model.EntityMatchEvents, t) {
		return nil
	}
	events := decodeAll(t, decodeEvent)
	out := FilterOrphans(events,
		ForeignKey[model.MatchEvent]{
			Column: "match_id", Value: func(x model.MatchEvent) string { return x.MatchID }, Parents: matches,
		},
		ForeignKey[model.MatchEvent]{
			Column: "team_id", Value: func(x model.MatchEvent) string { return x.TeamID }, Parents: teams,
		},
		ForeignKey[model.MatchEvent]{
			Column: "player_id", Value: func(x model.MatchEvent) string { return x.PlayerID }, Parents: players,
		},
	)
	out = DedupeByKey(out, func(x model.MatchEvent) string { return x.EventID })
	n.logResult(model.EntityMatchEvents, len(events), len(out))
	return out
}

func (n *Normalizer) normalizeOptDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	return n.NormalizeDate(*raw)
}
