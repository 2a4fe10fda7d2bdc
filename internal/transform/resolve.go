package transform

import "github.com/pable/go-scout-elt/internal/model"

// ForeignKey ties a child column to the key set of its cleaned parent.
type ForeignKey[T any] struct {
	Column  string
	Value   func(T) string
	Parents model.KeySet
}

// FilterOrphans keeps the rows whose foreign keys all resolve.
func FilterOrphans[T any](rows []T, fks ...ForeignKey[T]) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if resolves(r, fks) {
			out = append(out, r)
		}
	}
	return out
}

func resolves[T any](r T, fks []ForeignKey[T]) bool {
	for _, fk := range fks {
		if !fk.Parents.Has(fk.Value(r)) {
			return false
		}
	}
	return true
}

// Key sets of cleaned entities.

func TeamKeys(teams []model.Team) model.KeySet {
	ks := make(model.KeySet, len(teams))
	for _, t := range teams {
		ks[t.TeamID] = struct{}{}
	}
	return ks
}

func PlayerKeys(players []model.Player) model.KeySet {
	ks := make(model.KeySet, len(players))
	for _, p := range players {
		ks[p.PlayerID] = struct{}{}
	}
	return ks
}

func MatchKeys(matches []model.Match) model.KeySet {
	ks := make(model.KeySet, len(matches))
	for _, m := range matches {
		ks[m.MatchID] = struct{}{}
	}
	return ks
}
