// Package mapping loads line-item mapping tables from YAML files and
// ships a built-in set of K2-style tables so the binary works without
// external configuration. One YAML document describes one statement.
package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bokslut-dev/bokslut/internal/resolve"
)

// File is the YAML shape of one statement's mapping table.
type File struct {
	Statement string `yaml:"statement"`
	Items     []Item `yaml:"items"`
}

// Item is one line item. Exactly one of accounts or formula must be set.
type Item struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Row      int    `yaml:"row"`
	Accounts *Spec  `yaml:"accounts,omitempty"`
	Formula  string `yaml:"formula,omitempty"`
	Style    string `yaml:"style,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
}

// Spec selects accounts. Ranges are written "1110-1117" or as a single
// account "1930".
type Spec struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude,omitempty"`
	Sign    string   `yaml:"sign,omitempty"` // "", "plus" or "minus"
}

// Load reads one statement table from a YAML file.
func Load(path string) (*resolve.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping table: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing mapping table %s: %w", path, err)
	}
	t, err := build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadDir reads every *.yaml file in a directory, one table per file, in
// file-name order.
func LoadDir(dir string) ([]*resolve.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading mapping directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no mapping tables in %s", dir)
	}
	tables := make([]*resolve.Table, 0, len(names))
	for _, name := range names {
		t, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func build(f File) (*resolve.Table, error) {
	items := make([]resolve.LineItemMapping, 0, len(f.Items))
	for _, it := range f.Items {
		m := resolve.LineItemMapping{
			Name:    it.Name,
			Title:   it.Title,
			RowID:   it.Row,
			Formula: it.Formula,
			Style:   it.Style,
			Hidden:  it.Hidden,
		}
		if it.Accounts != nil {
			spec, err := buildSpec(*it.Accounts)
			if err != nil {
				return nil, fmt.Errorf("item %s: %w", it.Name, err)
			}
			m.Accounts = spec
		}
		items = append(items, m)
	}
	return resolve.NewTable(f.Statement, items)
}

func buildSpec(s Spec) (*resolve.AccountSpec, error) {
	spec := &resolve.AccountSpec{Sign: resolve.Sign(s.Sign)}
	for _, raw := range s.Include {
		r, single, err := parseRange(raw)
		if err != nil {
			return nil, err
		}
		if single {
			spec.Accounts = append(spec.Accounts, r.From)
		} else {
			spec.Ranges = append(spec.Ranges, r)
		}
	}
	for _, raw := range s.Exclude {
		r, single, err := parseRange(raw)
		if err != nil {
			return nil, err
		}
		if single {
			spec.ExcludeAccounts = append(spec.ExcludeAccounts, r.From)
		} else {
			spec.ExcludeRanges = append(spec.ExcludeRanges, r)
		}
	}
	return spec, nil
}

// parseRange parses "1110-1117" or "1930".
func parseRange(s string) (r resolve.AccountRange, single bool, err error) {
	from, to, dash := strings.Cut(strings.TrimSpace(s), "-")
	r.From, err = strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return r, false, fmt.Errorf("bad account range %q: %w", s, err)
	}
	if !dash {
		r.To = r.From
		return r, true, nil
	}
	r.To, err = strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return r, false, fmt.Errorf("bad account range %q: %w", s, err)
	}
	if r.To < r.From {
		return r, false, fmt.Errorf("bad account range %q: empty interval", s)
	}
	return r, false, nil
}
