package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pable/go-scout-elt/internal/logging"
	"github.com/pable/go-scout-elt/internal/model"
)

var processingDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newNormalizer() *Normalizer {
	return NewNormalizer(logging.NewNop(), func() time.Time { return processingDate })
}

func observedNormalizer() (*Normalizer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewNormalizer(logging.FromZap(zap.New(core)), func() time.Time { return processingDate }), logs
}

func TestNormalizePosition(t *testing.T) {
	n := newNormalizer()
	cases := map[string]string{
		"forward":            model.PositionForward,
		"striker":            model.PositionForward,
		"ST":                 model.PositionForward,
		"gk":                 model.PositionGoalkeeper,
		"Goalkeeper":         model.PositionGoalkeeper,
		"cb":                 model.PositionDefender,
		"Centre-Back":        model.PositionDefender,
		"Défender":           model.PositionDefender,
		"midfielder":         model.PositionMidfielder,
		"Central Midfielder": model.PositionMidfielder,
		"  cm ":              model.PositionMidfielder,
		"":                   model.PositionUnknown,
		"   ":                model.PositionUnknown,
		"center_back":        model.PositionUnknown,
		"winger":             model.PositionUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, n.NormalizePosition(in), "input %q", in)
	}
}

func TestNormalizePositionWarnsOnUnmapped(t *testing.T) {
	n, logs := observedNormalizer()
	n.NormalizePosition("winger")
	n.NormalizePosition("gk")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "unmapped position", logs.All()[0].Message)
	assert.Equal(t, "winger", logs.All()[0].ContextMap()["value"])
}

func TestNormalizeDate(t *testing.T) {
	n := newNormalizer()
	for _, in := range []string{"2023-01-15", "15/01/2023", "2023/01/15", "15-01-2023", "15.01.2023", "2023-01-15T10:00:00Z", " 2023-1-15 "} {
		got := n.NormalizeDate(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, "2023-01-15", *got, "input %q", in)
	}
	for _, in := range []string{"", "invalid-date", "2023-13-45", "31/02/2023"} {
		assert.Nil(t, n.NormalizeDate(in), "input %q", in)
	}
}

func TestNormalizeDateWarnsOnlyOnGarbage(t *testing.T) {
	n, logs := observedNormalizer()
	n.NormalizeDate("")
	n.NormalizeDate("invalid-date")
	assert.Equal(t, 1, logs.Len())
}

func TestDeriveAge(t *testing.T) {
	n := newNormalizer()
	ptr := func(s string) *string { return &s }

	age := n.DeriveAge(ptr("1990-01-01"))
	require.NotNil(t, age)
	assert.Equal(t, 34, *age)

	age = n.DeriveAge(ptr("2000-12-31"))
	require.NotNil(t, age)
	assert.Equal(t, 23, *age)

	assert.Nil(t, n.DeriveAge(ptr("invalid-date")))
	assert.Nil(t, n.DeriveAge(ptr("")))
	assert.Nil(t, n.DeriveAge(nil))
}

func TestAgeAtBirthdayBoundary(t *testing.T) {
	dob := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 23, AgeAt(dob, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeAt(dob, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDedupeByKeyKeepsLast(t *testing.T) {
	type row struct {
		id  string
		val int
	}
	rows := []row{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}, {"b", 5}}
	got := DedupeByKey(rows, func(r row) string { return r.id })

	assert.Equal(t, []row{{"a", 3}, {"c", 4}, {"b", 5}}, got)
}

func TestDedupeByKeyComposite(t *testing.T) {
	stats := []model.PlayerMatchStat{
		{PlayerID: "P001", MatchID: "M001", Goals: 1},
		{PlayerID: "P001", MatchID: "M002", Goals: 0},
		{PlayerID: "P001", MatchID: "M001", Goals: 2},
	}
	got := DedupeByKey(stats, model.PlayerMatchStat.Key)

	require.Len(t, got, 2)
	assert.Equal(t, "M002", got[0].MatchID)
	assert.Equal(t, 2, got[1].Goals)
}
