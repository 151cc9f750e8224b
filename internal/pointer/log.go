package pointer

import "github.com/banshee-data/touchbridge/internal/monitoring"

// LogSink only reports pointer operations. It is the dry-run sink.
type LogSink struct{}

// NewLogSink returns a sink that logs through monitoring.Logf.
func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) MoveTo(x, y int) error {
	monitoring.Logf("pointer move to (%d, %d)", x, y)
	return nil
}

func (s *LogSink) Press() error {
	monitoring.Logf("pointer press")
	return nil
}

func (s *LogSink) Release() error {
	monitoring.Logf("pointer release")
	return nil
}
