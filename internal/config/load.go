package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a counter configuration file:
//
//	rows:
//	  - dotCount: 10
//	    visibleDots: 6
//	    activeColor: "#3f51b5"
type File struct {
	Rows []Counter `yaml:"rows"`
}

// DefaultFile mirrors the demo screen: two ten dot rows windowed to six,
// one per transition style.
func DefaultFile() File {
	first := DefaultCounter()
	first.VisibleDots = 6

	second := DefaultCounter()
	second.VisibleDots = 6
	second.Style = StyleBasic
	second.ActiveColor = Color{R: 0x00, G: 0x96, B: 0x88, A: 0xff}
	second.InactiveColor = Color{R: 0xb2, G: 0xdf, B: 0xdb, A: 0xff}

	return File{Rows: []Counter{first, second}}
}

// Parse decodes a configuration document. Fields a row leaves out keep
// their defaults, and every row is normalized.
func Parse(data []byte) (File, error) {
	var raw struct {
		Rows []yaml.Node `yaml:"rows"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("failed to parse counter config: %w", err)
	}
	if len(raw.Rows) == 0 {
		return File{}, errors.New("counter config has no rows")
	}

	f := File{Rows: make([]Counter, 0, len(raw.Rows))}
	for i := range raw.Rows {
		row := DefaultCounter()
		if err := raw.Rows[i].Decode(&row); err != nil {
			return File{}, fmt.Errorf("failed to decode row %d: %w", i, err)
		}
		f.Rows = append(f.Rows, row.Normalize())
	}
	return f, nil
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read counter config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WithStyle returns a copy of f with every row switched to s. An empty s
// keeps the configured styles.
func (f File) WithStyle(s Style) File {
	rows := make([]Counter, len(f.Rows))
	copy(rows, f.Rows)
	if s != "" {
		for i := range rows {
			rows[i].Style = s
		}
	}
	return File{Rows: rows}
}
