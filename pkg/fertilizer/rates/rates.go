package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"agrimanage/pkg/apperr"
)

// Table maps crop -> fertilizer -> kg per acre. Keys are lowercase.
type Table struct {
	rates map[string]map[string]float64
}

// Row is one table entry for listings.
type Row struct {
	Crop       string  `json:"crop"`
	Fertilizer string  `json:"fertilizer"`
	Rate       float64 `json:"rate_kg_per_acre"`
}

// Default returns the compiled-in table.
func Default() *Table {
	return &Table{rates: map[string]map[string]float64{
		"wheat":     {"urea": 100, "dap": 50, "mop": 25},
		"rice":      {"urea": 120, "dap": 60, "mop": 30},
		"maize":     {"urea": 80, "dap": 40, "mop": 20},
		"cotton":    {"urea": 90, "dap": 45, "mop": 22},
		"sugarcane": {"urea": 150, "dap": 75, "mop": 37},
	}}
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Rate looks up a rate. Both keys are case-insensitive.
func (t *Table) Rate(crop, fertilizer string) (float64, error) {
	if byFert, ok := t.rates[key(crop)]; ok {
		if r, ok := byFert[key(fertilizer)]; ok {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%s/%s: %w", crop, fertilizer, apperr.ErrUnknownCombination)
}

// Crops lists the crop keys in alphabetical order.
func (t *Table) Crops() []string {
	out := make([]string, 0, len(t.rates))
	for c := range t.rates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Rows lists every entry ordered by crop then fertilizer.
func (t *Table) Rows() []Row {
	var out []Row
	for _, c := range t.Crops() {
		ferts := make([]string, 0, len(t.rates[c]))
		for f := range t.rates[c] {
			ferts = append(ferts, f)
		}
		sort.Strings(ferts)
		for _, f := range ferts {
			out = append(out, Row{Crop: c, Fertilizer: f, Rate: t.rates[c][f]})
		}
	}
	return out
}

func (t *Table) set(crop, fert string, rate float64) {
	c, f := key(crop), key(fert)
	if t.rates[c] == nil {
		t.rates[c] = map[string]float64{}
	}
	t.rates[c][f] = rate
}

// Merge returns a copy of t with every entry of o laid over it.
func (t *Table) Merge(o *Table) *Table {
	out := &Table{rates: map[string]map[string]float64{}}
	for _, src := range []*Table{t, o} {
		if src == nil {
			continue
		}
		for c, byFert := range src.rates {
			for f, r := range byFert {
				out.set(c, f, r)
			}
		}
	}
	return out
}

// LoadFile reads a table from .yaml/.yml, .csv or .xlsx. Tabular files use
// either long rows (crop, fertilizer, rate) or a wide layout (crop, urea, dap, ...).
func LoadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		recs, err := readCSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return fromRows(recs)
	case ".xlsx":
		x, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer x.Close()
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: no sheets", path)
		}
		recs, err := x.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return fromRows(recs)
	default:
		return nil, fmt.Errorf("unsupported rates file %q", path)
	}
}

func loadYAML(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]map[string]float64
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t := &Table{rates: map[string]map[string]float64{}}
	for c, byFert := range doc {
		for f, r := range byFert {
			if r < 0 {
				return nil, fmt.Errorf("%s: negative rate for %s/%s", path, c, f)
			}
			t.set(c, f, r)
		}
	}
	return t, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var out [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func norm(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func fromRows(recs [][]string) (*Table, error) {
	if len(recs) == 0 {
		return nil, errors.New("empty rates sheet")
	}
	head := map[string]int{}
	for i, h := range recs[0] {
		head[norm(h)] = i
	}
	cCrop, ok := head["crop"]
	if !ok {
		return nil, fmt.Errorf("rates sheet needs a crop column, found %v", recs[0])
	}
	get := func(rec []string, idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}
	parse := func(line int, s string) (float64, bool, error) {
		if s == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return 0, false, fmt.Errorf("line %d: bad rate %q", line, s)
		}
		return v, true, nil
	}

	t := &Table{rates: map[string]map[string]float64{}}
	cFert, long := head["fertilizer"]
	cRate, hasRate := head["rate"]
	if long && hasRate {
		for i, rec := range recs[1:] {
			crop, fert := get(rec, cCrop), get(rec, cFert)
			if crop == "" || fert == "" {
				continue
			}
			v, ok, err := parse(i+2, get(rec, cRate))
			if err != nil {
				return nil, err
			}
			if ok {
				t.set(crop, fert, v)
			}
		}
		return t, nil
	}

	for i, rec := range recs[1:] {
		crop := get(rec, cCrop)
		if crop == "" {
			continue
		}
		for col, h := range recs[0] {
			if col == cCrop || strings.TrimSpace(h) == "" {
				continue
			}
			v, ok, err := parse(i+2, get(rec, col))
			if err != nil {
				return nil, err
			}
			if ok {
				t.set(crop, h, v)
			}
		}
	}
	return t, nil
}
