package domain

import (
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/beka-birhanu/micromouse-api/sim"
)

// Run statuses.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// TraceEntry is one persisted trace record: the action taken and the
// agent state after it.
type TraceEntry struct {
	Seq      int    `bson:"seq" json:"seq"`
	Phase    string `bson:"phase" json:"phase"`
	Row      int    `bson:"row" json:"row"`
	Col      int    `bson:"col" json:"col"`
	Heading  string `bson:"heading" json:"heading"`
	Rotation int    `bson:"rotation" json:"rotation"`
	Movement int    `bson:"movement" json:"movement"`
	Visits   int    `bson:"visits" json:"visits"`
}

// Run is a persisted simulation run in its BSON form. Score is the race
// action count plus a fraction of the exploration cost; lower is better.
type Run struct {
	ID           uuid.UUID    `bson:"_id"`
	MazeID       uuid.UUID    `bson:"mazeId"`
	UserID       uuid.UUID    `bson:"userId"`
	Status       string       `bson:"status"`
	FailReason   string       `bson:"failReason,omitempty"`
	GoalFound    bool         `bson:"goalFound"`
	ExploreSteps int          `bson:"exploreSteps"`
	RaceSteps    int          `bson:"raceSteps"`
	Score        float64      `bson:"score"`
	Trace        []TraceEntry `bson:"trace"`
	CreatedAt    time.Time    `bson:"createdAt"`
}

// NewRun creates a run shell for the given maze and operator.
func NewRun(mazeID, userID uuid.UUID) *Run {
	return &Run{
		ID:        uuid.New(),
		MazeID:    mazeID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// AppendTrace converts and appends engine trace records.
func (r *Run) AppendTrace(records iter.Seq[sim.Record]) {
	for rec := range records {
		r.Trace = append(r.Trace, TraceEntry{
			Seq:      len(r.Trace),
			Phase:    rec.Phase.String(),
			Row:      rec.Row,
			Col:      rec.Col,
			Heading:  rec.Heading.String(),
			Rotation: int(rec.Rotation),
			Movement: rec.Movement,
			Visits:   rec.Visits,
		})
	}
}
