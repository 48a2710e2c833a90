// Package snapshot holds the baseline and current flattened views of the
// watched JSON file.
package snapshot

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/jsonwatch/internal/flatten"
)

// ReadError reports that the watched file could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports that the watched file does not hold valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads path in full and flattens its JSON contents.
func Load(path string) (*flatten.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	tbl, err := flatten.FlattenJSON(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return tbl, nil
}

// Store keeps the baseline captured at startup and the most recent good
// reading of the file. The baseline never changes after New returns.
type Store struct {
	path     string
	load     func(string) (*flatten.Table, error)
	baseline *flatten.Table
	current  *flatten.Table
}

// New captures the baseline from path. Without a baseline there is nothing to
// compare against, so any load failure is returned to the caller.
func New(path string) (*Store, error) {
	return newStore(path, Load)
}

func newStore(path string, load func(string) (*flatten.Table, error)) (*Store, error) {
	baseline, err := load(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		path:     path,
		load:     load,
		baseline: baseline,
		current:  baseline.Clone(),
	}, nil
}

// Refresh re-reads the file and replaces Current wholesale. On failure the
// previous Current is kept and the error is returned.
func (s *Store) Refresh() error {
	tbl, err := s.load(s.path)
	if err != nil {
		return err
	}
	s.current = tbl
	return nil
}

// Path returns the watched file path.
func (s *Store) Path() string { return s.path }

// Baseline returns the startup snapshot. Callers must not modify it.
func (s *Store) Baseline() *flatten.Table { return s.baseline }

// Current returns the latest successfully loaded snapshot.
func (s *Store) Current() *flatten.Table { return s.current }
