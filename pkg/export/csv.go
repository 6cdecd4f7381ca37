package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/crop/repository"
)

// Header is the first CSV line, in column order.
var Header = []string{"Crop Name", "Season", "Fertilizer", "Yield (tons)", "Area (acres)"}

// FileBase is the download name without extension.
const FileBase = "crop_data"

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteCSV writes one row per crop in store order. Fields holding commas,
// quotes or newlines are quoted.
func WriteCSV(w io.Writer, crops []entities.Crop) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range crops {
		if err := cw.Write([]string{c.Name, string(c.Season), string(c.Fertilizer), num(c.Yield), num(c.Area)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// normHeader folds "Yield (tons)", "yield" and "YIELD_TONS" to "yield".
func normHeader(s string) string {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF"))
	if i := strings.IndexAny(s, "(_"); i > 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "cropname" || s == "crop" {
		return "name"
	}
	return s
}

// ReadCSV parses a file in the WriteCSV layout. Column order may differ and
// header names match case-insensitively. Blank lines are skipped.
func ReadCSV(r io.Reader) ([]repository.CropInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", apperr.ErrInvalidRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRecord, err)
	}
	col := map[string]int{}
	for i, h := range head {
		col[normHeader(h)] = i
	}
	for _, want := range []string{"name", "season", "fertilizer", "yield", "area"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", apperr.ErrInvalidRecord, want)
		}
	}

	var out []repository.CropInput
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperr.ErrInvalidRecord, line, err)
		}
		get := func(k string) string {
			i := col[k]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if strings.Join(rec, "") == "" {
			continue
		}
		y, err := parseNum(get("yield"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: yield %q", apperr.ErrInvalidRecord, line, get("yield"))
		}
		a, err := parseNum(get("area"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: area %q", apperr.ErrInvalidRecord, line, get("area"))
		}
		out = append(out, repository.CropInput{
			Name:       get("name"),
			Season:     get("season"),
			Fertilizer: get("fertilizer"),
			Yield:      y,
			Area:       a,
		})
	}
}

// parseNum reads an empty cell as 0.
func parseNum(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
