package models

// VoterSelection pairs an option name with the rank the voter gave it.
type VoterSelection struct {
	OptionName string `bson:"optionName" json:"optionName"`
	Rank       int    `bson:"rank" json:"rank"`
}

// Voter is one participant of one poll.
type Voter struct {
	ID         string           `bson:"_id" json:"id"`
	PollID     string           `bson:"pollId" json:"pollId"`
	Selections []VoterSelection `bson:"selections" json:"selections"`
}

// Clone returns a deep copy of the voter.
func (v *Voter) Clone() *Voter {
	if v == nil {
		return nil
	}
	c := *v
	if v.Selections != nil {
		c.Selections = make([]VoterSelection, len(v.Selections))
		copy(c.Selections, v.Selections)
	}
	return &c
}
