package transform

import (
	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/model"
)

// TransformAll cleans every entity in dependency order. A child entity is
// skipped, not filtered against an empty key set, when any parent it
// references came out empty.
func (n *Normalizer) TransformAll(tables map[string]*landing.Table) model.Dataset {
	var ds model.Dataset

	ds.Teams = n.Teams(tables[model.EntityTeams])

	if len(ds.Teams) > 0 {
		ds.Players = n.Players(tables[model.EntityPlayers], TeamKeys(ds.Teams))
	} else {
		n.skip(model.EntityPlayers, model.EntityTeams)
	}

	ds.Matches = n.Matches(tables[model.EntityMatches])

	switch {
	case len(ds.Players) == 0:
		n.skip(model.EntityPlayerMatchStats, model.EntityPlayers)
	case len(ds.Matches) == 0:
		n.skip(model.EntityPlayerMatchStats, model.EntityMatches)
	default:
		ds.PlayerMatchStats = n.PlayerMatchStats(tables[model.EntityPlayerMatchStats],
			PlayerKeys(ds.Players), MatchKeys(ds.Matches))
	}

	switch {
	case len(ds.Matches) == 0:
		n.skip(model.EntityMatchEvents, model.EntityMatches)
	case len(ds.Teams) == 0:
		n.skip(model.EntityMatchEvents, model.EntityTeams)
	case len(ds.Players) == 0:
		n.skip(model.EntityMatchEvents, model.EntityPlayers)
	default:
		ds.MatchEvents = n.MatchEvents(tables[model.EntityMatchEvents],
			MatchKeys(ds.Matches), TeamKeys(ds.Teams), PlayerKeys(ds.Players))
	}

	return ds
}

func (n *Normalizer) skip(entity, parent string) {
	n.log.Warn("transform skipped: parent entity is empty", "entity", entity, "parent", parent)
}
