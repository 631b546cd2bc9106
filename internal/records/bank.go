// Package records keeps the water balloon game's record list: a JSON
// array stored under a single key of a key-value store.
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Key is the fixed key the record list is stored under.
const Key = "waterBalloonGameRecords"

// GameRecord is one finished game.
type GameRecord struct {
	ID           string `json:"id"`
	Score        int    `json:"score"`
	TargetsHit   int    `json:"targetsHit"`
	TotalTargets int    `json:"totalTargets"`
	Date         string `json:"date"`
	Duration     int    `json:"duration"` // Seconds
}

// Stats summarizes a record list.
type Stats struct {
	BestScore  int
	BestTime   int // Shortest duration in seconds
	TotalGames int
}

// KV is the storage the bank needs.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// Bank reads and writes the record list.
type Bank struct {
	kv  KV
	now func() time.Time
}

// NewBank creates a bank backed by kv.
func NewBank(kv KV) *Bank {
	return &Bank{kv: kv, now: time.Now}
}

// Load returns all stored records, oldest first. A missing key yields an
// empty list.
func (b *Bank) Load() ([]GameRecord, error) {
	raw, ok, err := b.kv.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("records: load: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var list []GameRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("records: decode: %w", err)
	}
	return list, nil
}

// Append adds rec to the list. Empty ID and Date are filled from the clock.
func (b *Bank) Append(rec GameRecord) (GameRecord, error) {
	list, err := b.Load()
	if err != nil {
		return rec, err
	}

	now := b.now()
	if rec.ID == "" {
		rec.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	if rec.Date == "" {
		rec.Date = now.Format("2006-01-02")
	}

	list = append(list, rec)
	data, err := json.Marshal(list)
	if err != nil {
		return rec, fmt.Errorf("records: encode: %w", err)
	}
	if err := b.kv.Put(Key, string(data)); err != nil {
		return rec, fmt.Errorf("records: save: %w", err)
	}
	return rec, nil
}

// Clear removes every record.
func (b *Bank) Clear() error {
	if err := b.kv.Delete(Key); err != nil {
		return fmt.Errorf("records: clear: %w", err)
	}
	return nil
}

// Summarize computes stats for list. An empty list has zero stats.
func Summarize(list []GameRecord) Stats {
	if len(list) == 0 {
		return Stats{}
	}

	s := Stats{
		BestScore:  list[0].Score,
		BestTime:   list[0].Duration,
		TotalGames: len(list),
	}
	for _, r := range list[1:] {
		s.BestScore = max(s.BestScore, r.Score)
		s.BestTime = min(s.BestTime, r.Duration)
	}
	return s
}

// Stats loads the list and summarizes it.
func (b *Bank) Stats() (Stats, error) {
	list, err := b.Load()
	if err != nil {
		return Stats{}, err
	}
	return Summarize(list), nil
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
