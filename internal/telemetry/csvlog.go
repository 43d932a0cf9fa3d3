// internal/telemetry/csvlog.go

package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"framepacer/internal/sched"
)

// CSVLogger appends one row per finished frame to a CSV file.
// Implements sched.FrameObserver.
type CSVLogger struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVLogger creates the file and writes the header row.
func NewCSVLogger(path string) (*CSVLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv log: %w", err)
	}
	w := csv.NewWriter(f)

	header := []string{"timestamp", "frame", "executed", "deferred", "elapsed_us", "utilization", "peak_depth"}
	for _, c := range sched.PriorityOrder() {
		header = append(header, c.String())
	}
	w.Write(header)
	w.Flush()

	return &CSVLogger{file: f, writer: w}, nil
}

// OnFrameEnd writes one row for the finished frame.
func (l *CSVLogger) OnFrameEnd(report sched.FrameReport) {
	rec := []string{
		time.Now().Format(time.RFC3339Nano),
		strconv.FormatUint(report.Frame, 10),
		strconv.FormatUint(report.Stats.FrameJobsExecuted, 10),
		strconv.FormatUint(report.Stats.FrameJobsDeferred, 10),
		strconv.FormatInt(report.Stats.FrameElapsed.Microseconds(), 10),
		fmt.Sprintf("%.4f", report.Stats.BudgetUtilization),
		strconv.Itoa(report.Stats.PeakQueueDepth),
	}
	for _, c := range sched.PriorityOrder() {
		rec = append(rec, strconv.FormatUint(report.Stats.FramePerCategory[c], 10))
	}
	l.writer.Write(rec)
	l.writer.Flush()
}

// Close flushes and closes the underlying file.
func (l *CSVLogger) Close() error {
	l.writer.Flush()
	return l.file.Close()
}
