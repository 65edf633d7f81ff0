package models

import "time"

// PollStatus is the lifecycle state of a poll. Only Scheduled polls may be edited.
type PollStatus string

const (
	PollStatusScheduled PollStatus = "Scheduled"
	PollStatusActive    PollStatus = "Active"
	PollStatusClosed    PollStatus = "Closed"
)

// PollOption is one choice voters can rank.
type PollOption struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

// Poll is a named, time-bounded ranked-choice voting event.
type Poll struct {
	ID          string       `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description" json:"description"`
	OwnerID     string       `bson:"ownerId" json:"ownerId"`
	Status      PollStatus   `bson:"status" json:"status"`
	StartTime   time.Time    `bson:"startTime" json:"startTime"`
	EndTime     time.Time    `bson:"endTime" json:"endTime"`
	Options     []PollOption `bson:"options" json:"options"`
}

// Clone returns a deep copy so stores never share option slices with callers.
func (p *Poll) Clone() *Poll {
	if p == nil {
		return nil
	}
	c := *p
	if p.Options != nil {
		c.Options = make([]PollOption, len(p.Options))
		copy(c.Options, p.Options)
	}
	return &c
}

// PollRequest is the create/update payload. A nil StartTime means "now" on
// create and "keep the existing start time" on update.
type PollRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	OwnerID     string       `json:"ownerId"`
	StartTime   *time.Time   `json:"startTime,omitempty"`
	EndTime     time.Time    `json:"endTime"`
	Options     []PollOption `json:"options"`
}
