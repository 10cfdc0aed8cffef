package history

import "time"

// Status is the outcome of one file conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// Run summarizes one invocation of the converter.
type Run struct {
	ID         string
	InputDir   string
	Format     string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is open
	Converted  int
	Failed     int
}

// Entry is the persisted outcome of one file.
type Entry struct {
	Source    string
	Output    string
	Status    Status
	Preserved float64
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}
