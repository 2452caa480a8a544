package notation

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Direction distinguishes "one direction" from "each direction" distance work.
type Direction string

const (
	OneDirection  Direction = "one"
	EachDirection Direction = "each"
)

// Landmark maps a distance in feet to a display phrase per direction.
type Landmark struct {
	Feet          int    `yaml:"feet"`
	OneDirection  string `yaml:"one_direction"`
	EachDirection string `yaml:"each_direction"`
}

// Tables holds the closed, hand-authored lookup data the grammar consults:
// the external-load keyword allow-list and the distance landmark table.
type Tables struct {
	LoadKeywords []string   `yaml:"load_keywords"`
	Landmarks    []Landmark `yaml:"landmarks"`
}

// DefaultTables returns the embedded grammar tables.
func DefaultTables() Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("notation: embedded tables.yaml is invalid: %v", err))
	}
	return t
}

// ParseTables decodes grammar tables from YAML.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing grammar tables: %w", err)
	}
	for i, kw := range t.LoadKeywords {
		t.LoadKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	for _, lm := range t.Landmarks {
		if lm.Feet <= 0 {
			return Tables{}, fmt.Errorf("landmark with non-positive distance %d", lm.Feet)
		}
	}
	return t, nil
}

// LoadTables reads grammar tables from a YAML file. Sections missing from the
// file fall back to the embedded defaults.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading grammar tables: %w", err)
	}
	t, err := ParseTables(data)
	if err != nil {
		return Tables{}, err
	}
	def := DefaultTables()
	if len(t.LoadKeywords) == 0 {
		t.LoadKeywords = def.LoadKeywords
	}
	if len(t.Landmarks) == 0 {
		t.Landmarks = def.Landmarks
	}
	return t, nil
}

// Landmark returns the display cue for a distance, or "" when the table has
// no entry for it. The lookup is exact; there is no interpolation.
func (t Tables) Landmark(feet int, dir Direction) string {
	for _, lm := range t.Landmarks {
		if lm.Feet != feet {
			continue
		}
		if dir == EachDirection && lm.EachDirection != "" {
			return lm.EachDirection
		}
		return lm.OneDirection
	}
	return ""
}

// TakesLoad reports whether an exercise name matches the external-load
// keyword allow-list. This is a heuristic over a closed list, not a
// classification of the exercise.
func (t Tables) TakesLoad(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range t.LoadKeywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
