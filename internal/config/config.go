// Package config provides YAML-based configuration loading for the log viewer.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by Validate for any out-of-range value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// LogViewerConfig contains all configuration for the log viewer.
type LogViewerConfig struct {
	TotalLogs    int            `yaml:"total_logs"`    // TOTAL_LOGS
	BatchSize    int            `yaml:"batch_size"`    // BATCH_SIZE
	RowHeight    int            `yaml:"row_height"`    // ROW_HEIGHT, terminal rows per record
	HeaderHeight int            `yaml:"header_height"` // HEADER_HEIGHT, rows above the list
	Producer     ProducerConfig `yaml:"producer"`
}

// ProducerConfig defines the background generator parameters.
type ProducerConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// Validate checks that every size is usable.
func (c LogViewerConfig) Validate() error {
	switch {
	case c.TotalLogs <= 0:
		return fmt.Errorf("%w: total_logs must be positive, got %d", ErrInvalidConfig, c.TotalLogs)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.RowHeight <= 0:
		return fmt.Errorf("%w: row_height must be positive, got %d", ErrInvalidConfig, c.RowHeight)
	case c.HeaderHeight < 0:
		return fmt.Errorf("%w: header_height must not be negative, got %d", ErrInvalidConfig, c.HeaderHeight)
	case c.Producer.Workers <= 0:
		return fmt.Errorf("%w: producer.workers must be positive, got %d", ErrInvalidConfig, c.Producer.Workers)
	case c.Producer.QueueSize < 0:
		return fmt.Errorf("%w: producer.queue_size must not be negative, got %d", ErrInvalidConfig, c.Producer.QueueSize)
	}
	return nil
}
