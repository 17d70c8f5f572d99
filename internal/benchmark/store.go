package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a persisted snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a snapshot format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot format %q (want json or yaml)", s)
	}
}

// snapshotLayout sorts lexically in chronological order.
const snapshotLayout = "2006-01-02_15-04-05"

// now is replaced in tests.
var now = time.Now

// Store persists a finished ResultSet.
type Store interface {
	Save(rs *ResultSet) (string, error)
}

// FileStore writes each ResultSet to its own timestamped file.
type FileStore struct {
	dir    string
	format Format
}

func NewFileStore(dir string, format Format) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, format: format}, nil
}

// Path returns the file name a snapshot taken at t is written to.
func (s *FileStore) Path(t time.Time) string {
	return filepath.Join(s.dir, "results_"+t.Format(snapshotLayout)+"."+string(s.format))
}

// Save writes rs atomically and returns the file path.
func (s *FileStore) Save(rs *ResultSet) (string, error) {
	data, err := encodeSnapshot(rs, s.format)
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	path := s.Path(now())
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func encodeSnapshot(rs *ResultSet, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(rs)
	default:
		return json.MarshalIndent(rs, "", "  ")
	}
}

// LoadSnapshot reads a snapshot written by FileStore. The format is chosen by
// file extension, defaulting to JSON.
func LoadSnapshot(path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rs := NewResultSet()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, rs)
	default:
		err = json.Unmarshal(data, rs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rs, nil
}
