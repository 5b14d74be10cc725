package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/galaxy/internal/galaxy"
)

var pointsHeader = []string{"x", "y", "z", "r", "g", "b"}

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
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Seed       int64             `json:"seed"`
	Count      int               `json:"count"`
	Generation uint64            `json:"generation"`
	Params     galaxy.Parameters `json:"params"`
}

// Save writes metadata.json and points.csv for b under a new run directory.
func (s *Store) Save(b *galaxy.Buffers, seed int64) (string, error) {
	if b == nil || b.Released() {
		return "", errors.New("storage: buffers already released")
	}
	now := time.Now()
	runID := fmt.Sprintf("galaxy_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		Seed:       seed,
		Count:      b.Len(),
		Generation: b.Generation,
		Params:     b.Params,
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

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WritePoints(csvFile, b); err != nil {
		return "", err
	}
	return runID, nil
}

// WritePoints writes one x,y,z,r,g,b row per point.
func WritePoints(out io.Writer, b *galaxy.Buffers) error {
	w := csv.NewWriter(out)
	if err := w.Write(pointsHeader); err != nil {
		return err
	}
	row := make([]string, 6)
	for i := 0; i < b.Len(); i++ {
		x, y, z := b.Point(i)
		r, g, bl := b.Color(i)
		for k, v := range [6]float32{x, y, z, r, g, bl} {
			row[k] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns saved runs, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

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

// LoadPoints reads a saved galaxy back into detached buffers.
func (s *Store) LoadPoints(runID string) (*galaxy.Buffers, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(pointsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}

	b := &galaxy.Buffers{
		Positions:  make([]float32, 0, len(records)*3),
		Colors:     make([]float32, 0, len(records)*3),
		Params:     meta.Params,
		Generation: meta.Generation,
	}
	for line, record := range records {
		var vals [6]float32
		for k, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: points.csv line %d: %w", runID, line+2, err)
			}
			vals[k] = float32(v)
		}
		b.Positions = append(b.Positions, vals[0], vals[1], vals[2])
		b.Colors = append(b.Colors, vals[3], vals[4], vals[5])
	}
	return b, nil
}
