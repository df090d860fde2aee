// Package thermal reads temperature samples with hardware abstraction.
// The file implementation reads a sysfs-style thermal zone.
// The fake implementation allows testing without hardware.
package thermal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is the SoC thermal zone exposed by Linux.
const DefaultPath = "/sys/class/thermal/thermal_zone0/temp"

// Source produces temperature samples.
type Source interface {
	// Sample returns the current temperature in milli-degrees Celsius.
	Sample() (int, error)
}

// ErrorKind classifies a SensorError.
type ErrorKind int

const (
	// Unreadable means the source could not be opened or read.
	Unreadable ErrorKind = iota + 1
	// Malformed means the content was not a decimal integer.
	Malformed
)

func (k ErrorKind) String() string {
	switch k {
	case Unreadable:
		return "unreadable"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// SensorError reports a failed sample.
type SensorError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("sensor %s %s: %v", e.Path, e.Kind, e.Err)
}

func (e *SensorError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a SensorError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SensorError
	return errors.As(err, &se) && se.Kind == kind
}

// FileSource reads a plain-text milli-degree value from a file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path. An empty path selects DefaultPath.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{path: path}
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Sample reads and parses the file.
func (s *FileSource) Sample() (int, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return 0, &SensorError{Kind: Unreadable, Path: s.path, Err: err}
	}
	v, err := parseMilliC(string(b))
	if err != nil {
		return 0, &SensorError{Kind: Malformed, Path: s.path, Err: err}
	}
	return v, nil
}

func parseMilliC(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty reading")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return n, nil
}
