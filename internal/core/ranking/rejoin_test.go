package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejoin_RemoteOrderDedupAndDefaults(t *testing.T) {
	half := 0.5
	named := []Scored{{ID: 3, Score: &half}, {ID: 8}, {ID: 1}, {ID: 3}}
	known := []Item{
		{ID: 1, Abbreviation: "API", Score: 0.2},
		{ID: 3, Abbreviation: "PDV", Reason: "stale"},
	}

	got := Rejoin(named, known, 1.0, ReasonRemoteTrending)
	require.Len(t, got, 2)
	assert.Equal(t, "PDV", got[0].Abbreviation)
	assert.Equal(t, 0.5, got[0].Score)
	assert.Equal(t, ReasonRemoteTrending, got[0].Reason)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, 1.0, got[1].Score)
	assert.Equal(t, []int64{3, 8, 1, 3}, IDs(named))
}

func TestRejoin_NothingKnown(t *testing.T) {
	got := Rejoin([]Scored{{ID: 1}}, nil, 1.0, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
