package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/particlelab/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := int64(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEnd: i * 120, Mode: "neural", Particles: 120}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{PhasePct: map[string]float64{PhaseUpdate: 80}}, 120); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	bookmarks := []Bookmark{
		{Type: BookmarkMelt, Frame: 240, Mode: "phase", Description: "Lattice melted (1 toggles in window)"},
		{Type: BookmarkSettled, Frame: 960, Mode: "phase", Description: "at rest"},
	}
	for _, b := range bookmarks {
		if err := om.WriteBookmark(b); err != nil {
			t.Fatalf("WriteBookmark: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []WindowStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("telemetry rows = %d, want 3 (one header)", len(rows))
	}
	if rows[2].WindowEnd != 360 || rows[2].Mode != "neural" {
		t.Errorf("last row = %+v", rows[2])
	}

	pf, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	var perf []PerfStatsCSV
	if err := gocsv.UnmarshalFile(pf, &perf); err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if len(perf) != 1 || perf[0].UpdatePct != 80 {
		t.Errorf("perf rows = %+v", perf)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	bf, err := os.Open(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()
	var marks []Bookmark
	if err := gocsv.UnmarshalFile(bf, &marks); err != nil {
		t.Fatalf("reading bookmarks.csv: %v", err)
	}
	if len(marks) != 2 || marks[0] != bookmarks[0] || marks[1].Type != BookmarkSettled {
		t.Errorf("bookmark rows = %+v", marks)
	}
}
