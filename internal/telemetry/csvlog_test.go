package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVLoggerWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.csv")

	l, err := NewCSVLogger(path)
	if err != nil {
		t.Fatalf("new csv logger: %v", err)
	}

	l.OnFrameEnd(testReport(1, 10, 0, 0.4))
	l.OnFrameEnd(testReport(2, 12, 5, 1.1))

	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if len(records[0]) != 12 {
		t.Errorf("expected 12 columns, got %d", len(records[0]))
	}
	if records[0][0] != "timestamp" || records[0][1] != "frame" {
		t.Errorf("unexpected header start: %v", records[0][:2])
	}
	if records[0][7] != "transform" || records[0][11] != "ai" {
		t.Errorf("unexpected category columns: %v", records[0][7:])
	}
	if records[1][1] != "1" || records[2][1] != "2" {
		t.Errorf("unexpected frame numbers: %q %q", records[1][1], records[2][1])
	}
	if records[1][2] != "10" {
		t.Errorf("expected executed 10, got %q", records[1][2])
	}
	if records[2][3] != "5" {
		t.Errorf("expected deferred 5, got %q", records[2][3])
	}
}
