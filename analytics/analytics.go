package analytics

import (
	"encoding/json"
	"fmt"
)

// Status is the outcome of a level attempt.
type Status int

const (
	StatusInProgress Status = iota
	StatusSkipNext
	StatusSkipPrev
	StatusRestart
	StatusSuccess

	statusCount
)

var statusNames = [statusCount]string{
	"inProgress", "skipNext", "skipPrev", "restart", "success",
}

// String returns the wire name of the status. It panics on an invalid
// status.
func (s Status) String() string {
	if s < 0 || s >= statusCount {
		panic(fmt.Sprintf("analytics: invalid level status %d", int(s)))
	}
	return statusNames[s]
}

// Level summarizes one attempt at a level. Times are in milliseconds;
// TimeStart is the game clock when the level began, TimeWake and TimeEnd
// are relative to it. TimeWake is -1 when the player never woke up.
type Level struct {
	Index          int
	Level          int
	TimeStart      int
	TimeWake       int
	TimeEnd        int
	ActionCount    int
	TalkedToShadow bool
	Status         Status
}

type levelJSON struct {
	SessionID      string `json:"sessionId"`
	Index          int    `json:"index"`
	Level          int    `json:"level"`
	TimeStart      int    `json:"timeStart"`
	TimeWake       *int   `json:"timeWake"`
	TimeEnd        int    `json:"timeEnd"`
	ActionCount    int    `json:"actionCount"`
	TalkedToShadow bool   `json:"talkedToShadow"`
	Status         string `json:"status"`
}

func (l Level) encode(sessionID string) ([]byte, error) {
	j := levelJSON{
		SessionID:      sessionID,
		Index:          l.Index,
		Level:          l.Level,
		TimeStart:      l.TimeStart,
		TimeEnd:        l.TimeEnd,
		ActionCount:    l.ActionCount,
		TalkedToShadow: l.TalkedToShadow,
		Status:         l.Status.String(),
	}
	if l.TimeWake != -1 {
		wake := l.TimeWake
		j.TimeWake = &wake
	}
	return json.Marshal(j)
}

// Start identifies the machine and build at session start.
type Start struct {
	ComputerID  string `json:"computerId"`
	GameVersion string `json:"gameVersion"`
	OSVersion   string `json:"osVersion"`
}
