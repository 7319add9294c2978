// Package simapi provides structures and utilities for managing maze and
// simulation run requests and responses.
package simapi

import (
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
)

// CreateMazeRequest carries a text maze definition to store.
type CreateMazeRequest struct {
	Name       string `json:"name" binding:"required"`
	Definition string `json:"definition" binding:"required"`
}

// GenerateMazeRequest asks for a random maze of the given dimension.
type GenerateMazeRequest struct {
	Name string `json:"name" binding:"required"`
	Dim  int    `json:"dim" binding:"required"`
}

// MazeResponse describes a stored maze.
type MazeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dim       int       `json:"dim"`
	CreatedAt time.Time `json:"created_at"`
}

// RunRequest asks for a simulation run on a stored maze.
type RunRequest struct {
	MazeID string `json:"maze_id" binding:"required"`
}

// RunResponse describes the outcome of a simulation run.
type RunResponse struct {
	ID           string    `json:"id"`
	MazeID       string    `json:"maze_id"`
	Status       string    `json:"status"`
	FailReason   string    `json:"fail_reason,omitempty"`
	GoalFound    bool      `json:"goal_found"`
	ExploreSteps int       `json:"explore_steps"`
	RaceSteps    int       `json:"race_steps"`
	Score        float64   `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeaderboardEntryResponse is one leaderboard row.
type LeaderboardEntryResponse struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

func newMazeResponse(record *dmn.MazeRecord) *MazeResponse {
	return &MazeResponse{
		ID:        record.ID.String(),
		Name:      record.Name,
		Dim:       record.Dim,
		CreatedAt: record.CreatedAt,
	}
}

func newRunResponse(run *dmn.Run) *RunResponse {
	return &RunResponse{
		ID:           run.ID.String(),
		MazeID:       run.MazeID.String(),
		Status:       run.Status,
		FailReason:   run.FailReason,
		GoalFound:    run.GoalFound,
		ExploreSteps: run.ExploreSteps,
		RaceSteps:    run.RaceSteps,
		Score:        run.Score,
		CreatedAt:    run.CreatedAt,
	}
}
