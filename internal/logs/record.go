// Package logs synthesizes log records from their index.
// Generation is a pure function of the index except for the timestamp,
// which is offset from the wall clock at the moment of production.
package logs

import (
	"fmt"
	"strconv"
	"time"
)

// Level is the severity of a log record.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Source is the subsystem a log record claims to come from.
type Source string

const (
	SourceServer   Source = "server"
	SourceClient   Source = "client"
	SourceDatabase Source = "database"
	SourceAuth     Source = "auth"
	SourceAPI      Source = "api"
)

// Record is a single synthesized log line. Records are immutable values.
type Record struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"` // ms since epoch
	Level     Level  `json:"level"`
	Source    Source `json:"source"`
	Message   string `json:"message"`
}

// Time returns the record timestamp as a time.Time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Lookup tables. Order matters: indices are derived from the hash.
var (
	levels = []Level{LevelInfo, LevelWarn, LevelError}

	sources = []Source{SourceServer, SourceClient, SourceDatabase, SourceAuth, SourceAPI}

	messages = []string{
		"Request processed successfully",
		"Connection timeout",
		"Invalid authentication token",
		"Database query completed",
		"Cache miss",
		"Rate limit exceeded",
		"Resource not found",
		"Service unavailable",
	}
)

const (
	knuthMultiplier = 2654435761
	dayMillis       = 86_400_000
)

// Hash is Knuth's multiplicative hash of index truncated to 32 bits.
func Hash(index int) uint32 {
	return uint32(uint64(index) * knuthMultiplier)
}

// RecordID returns the stable identifier for index.
func RecordID(index int) string {
	return "log-" + strconv.Itoa(index)
}

// Generate synthesizes the record at index. Level, source and message
// depend only on index; the timestamp falls within the 24 hours before now.
func Generate(index int, now time.Time) Record {
	h := Hash(index)
	nLevels := uint32(len(levels))
	nSources := uint32(len(sources))

	return Record{
		ID:        RecordID(index),
		Timestamp: now.UnixMilli() - int64(h%dayMillis),
		Level:     levels[h%nLevels],
		Source:    sources[(h/nLevels)%nSources],
		Message:   messages[(h/(nLevels*nSources))%uint32(len(messages))],
	}
}

// InvalidRangeError reports a production request outside the producer contract.
type InvalidRangeError struct {
	Start int
	Count int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("logs: invalid range start=%d count=%d", e.Start, e.Count)
}

// Produce returns count records for indices [start, start+count).
func Produce(start, count int, now time.Time) ([]Record, error) {
	if start < 0 || count <= 0 {
		return nil, &InvalidRangeError{Start: start, Count: count}
	}

	out := make([]Record, count)
	for i := range out {
		out[i] = Generate(start+i, now)
	}
	return out, nil
}
