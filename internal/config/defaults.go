package config

import (
	_ "embed"
)

//go:embed defaults/logview.yaml
var defaultLogViewerYAML []byte

// DefaultLogViewerConfig returns the default log viewer configuration.
func DefaultLogViewerConfig() LogViewerConfig {
	return LogViewerConfig{
		TotalLogs:    1_000_000,
		BatchSize:    100,
		RowHeight:    1,
		HeaderHeight: 4,
		Producer: ProducerConfig{
			Workers:   2,
			QueueSize: 64,
		},
	}
}
