package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	summarySuffix = "_summary.json"
	lengthsSuffix = "_lengths.csv"
)

// Store keeps per-file analysis summaries next to the rendered figures.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Summary records the outcome of one rope-length analysis.
type Summary struct {
	ID         string            `json:"id"`
	File       string            `json:"file"`
	Timestamp  time.Time         `json:"timestamp"`
	Steps      int               `json:"steps"`
	Particles  int               `json:"particles"`
	MeanLength float64           `json:"mean_length"`
	StdLength  float64           `json:"std_length"`
	MinLength  float64           `json:"min_length"`
	MaxLength  float64           `json:"max_length"`
	MaxDrift   float64           `json:"max_drift"`
	Period     float64           `json:"dominant_period,omitempty"`
	Outputs    map[string]string `json:"outputs,omitempty"`
}

// Save writes the summary and the length series. The summary ID names both
// files and is used by Load.
func (s *Store) Save(summary *Summary, lengths []float64) error {
	if summary.ID == "" {
		return fmt.Errorf("storage: summary without id")
	}
	if err := s.Init(); err != nil {
		return err
	}
	if summary.Timestamp.IsZero() {
		summary.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(s.baseDir, summary.ID+summarySuffix))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(s.baseDir, summary.ID+lengthsSuffix))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"step", "length"}); err != nil {
		return err
	}
	for i, l := range lengths {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(l, 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every stored summary ordered by ID. Unreadable entries are
// skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Summary{}, nil
		}
		return nil, err
	}

	summaries := make([]Summary, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), summarySuffix) {
			continue
		}

		meta, err := s.Load(strings.TrimSuffix(entry.Name(), summarySuffix))
		if err != nil {
			continue
		}
		summaries = append(summaries, *meta)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (s *Store) Load(id string) (*Summary, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id+summarySuffix))
	if err != nil {
		return nil, err
	}

	var meta Summary
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// LoadLengths reads back the length series saved with a summary.
func (s *Store) LoadLengths(id string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id+lengthsSuffix))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	lengths := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s: %w", id, err)
		}
		lengths = append(lengths, v)
	}
	return lengths, nil
}

// ExportJSON writes a summary together with its length series.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	lengths, err := s.LoadLengths(id)
	if err != nil {
		return err
	}

	data := struct {
		*Summary
		Lengths []float64 `json:"lengths"`
	}{meta, lengths}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
