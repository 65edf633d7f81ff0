package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollCloneIsDeep(t *testing.T) {
	p := &Poll{ID: "p1", Name: "n", StartTime: time.Now(), Options: []PollOption{{Name: "a"}}}
	c := p.Clone()
	c.Options[0].Name = "changed"
	require.Equal(t, "a", p.Options[0].Name)

	var nilPoll *Poll
	require.Nil(t, nilPoll.Clone())
}

func TestVoterCloneIsDeep(t *testing.T) {
	v := &Voter{ID: "v1", Selections: []VoterSelection{{OptionName: "a", Rank: 1}}}
	c := v.Clone()
	c.Selections[0].Rank = 2
	require.Equal(t, 1, v.Selections[0].Rank)

	empty := (&Voter{ID: "v2", Selections: []VoterSelection{}}).Clone()
	require.NotNil(t, empty.Selections)
}

func TestNewIDIsValid(t *testing.T) {
	id := NewID()
	require.NoError(t, ValidateID(id))
	require.NotEqual(t, id, NewID())
}

func TestValidateIDRejectsMalformed(t *testing.T) {
	require.Error(t, ValidateID(""))
	require.Error(t, ValidateID("not-a-uuid"))
	require.NoError(t, ValidateID("7f0c2a73-3c55-4a61-9b1e-2f1f9d3f6e11"))
}
