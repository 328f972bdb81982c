// Package storage persists finished runs: one directory per run with a
// metadata.json and a gzipped CSV of the sampled reaction-coordinate trace.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/san-kum/rpmd/internal/config"
	"github.com/san-kum/rpmd/internal/sim"
)

const traceFile = "trace.csv.gz"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Potential string             `json:"potential"`
	Mode      string             `json:"mode"`
	Xi        float64            `json:"xi"`
	Atoms     int                `json:"atoms"`
	Beads     int                `json:"beads"`
	Dt        float64            `json:"dt"`
	Beta      float64            `json:"beta"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one finished run and returns its generated id.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Potential.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Potential: cfg.Potential.Name,
		Mode:      cfg.Mode,
		Xi:        cfg.Xi,
		Atoms:     cfg.Atoms,
		Beads:     cfg.Beads,
		Dt:        cfg.Dt,
		Beta:      cfg.Beta,
		Steps:     result.StepsTaken,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeTrace(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeTrace(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	defer zw.Close()

	w := csv.NewWriter(zw)
	defer w.Flush()

	if err := w.Write([]string{"time", "xi"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', 17, 64),
			strconv.FormatFloat(result.Xi[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every stored run, skipping unreadable entries.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load returns the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads back the sampled times and xi values of one run.
func (s *Store) LoadTrace(runID string) (times, xi []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, err
	}
	defer zr.Close()

	rows, err := csv.NewReader(zr).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty trace in run %s", runID)
	}

	for _, row := range rows[1:] {
		if len(row) != 2 {
			return nil, nil, fmt.Errorf("malformed trace row in run %s", runID)
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, err
		}
		x, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		xi = append(xi, x)
	}
	return times, xi, nil
}
