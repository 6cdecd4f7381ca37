package market

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
)

const maxPageBytes = 2 << 20

type scraper struct {
	base  string
	httpc *http.Client
	now   func() time.Time
}

// NewScraper reads the first HTML table of base?location=<loc>. Columns are
// matched by header text (commodity, variety, market, min, max, modal, unit, date).
func NewScraper(base string) Client {
	return &scraper{base: base, httpc: &http.Client{Timeout: 20 * time.Second}, now: time.Now}
}

func (s *scraper) Prices(ctx context.Context, location string) ([]entities.MarketPrice, error) {
	u, err := url.Parse(s.base)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("location", location)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: market page status %d", apperr.ErrCollaboratorUnavailable, resp.StatusCode)
	}
	if resp.ContentLength > maxPageBytes {
		return nil, fmt.Errorf("%w: market page too large", apperr.ErrParseFailure)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCollaboratorUnavailable, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrParseFailure, err)
	}
	return parseTable(doc, s.now().UTC())
}

func header(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	switch {
	case strings.Contains(h, "commodity"):
		return "commodity"
	case strings.Contains(h, "variety"):
		return "variety"
	case strings.Contains(h, "market"):
		return "market"
	case strings.Contains(h, "modal"):
		return "modal"
	case strings.Contains(h, "min"):
		return "min"
	case strings.Contains(h, "max"):
		return "max"
	case strings.Contains(h, "unit"):
		return "unit"
	case strings.Contains(h, "date"):
		return "date"
	}
	return ""
}

// price strips currency symbols and thousands separators.
func price(s string) (float64, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("no price in %q", s)
	}
	return strconv.ParseFloat(b.String(), 64)
}

func parseTable(doc *goquery.Document, now time.Time) ([]entities.MarketPrice, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no price table", apperr.ErrParseFailure)
	}
	cols := map[string]int{}
	table.Find("tr").First().Find("th,td").Each(func(i int, c *goquery.Selection) {
		if k := header(c.Text()); k != "" {
			if _, dup := cols[k]; !dup {
				cols[k] = i
			}
		}
	})
	if _, ok := cols["commodity"]; !ok {
		return nil, fmt.Errorf("%w: price table has no commodity column", apperr.ErrParseFailure)
	}

	var out []entities.MarketPrice
	var rowErr error
	table.Find("tr").Slice(1, goquery.ToEnd).EachWithBreak(func(n int, tr *goquery.Selection) bool {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		get := func(k string) string {
			if i, ok := cols[k]; ok && i < len(cells) {
				return cells[i]
			}
			return ""
		}
		if get("commodity") == "" {
			return true
		}
		p := entities.MarketPrice{
			Commodity: get("commodity"),
			Variety:   get("variety"),
			Market:    get("market"),
			Unit:      strings.TrimPrefix(get("unit"), "/"),
			Date:      now,
		}
		for k, dst := range map[string]*float64{"min": &p.MinPrice, "max": &p.MaxPrice, "modal": &p.ModalPrice} {
			if _, ok := cols[k]; !ok {
				continue
			}
			v, err := price(get(k))
			if err != nil {
				rowErr = fmt.Errorf("%w: row %d: %v", apperr.ErrParseFailure, n+1, err)
				return false
			}
			*dst = v
		}
		if d := get("date"); d != "" {
			for _, layout := range []string{"2006-01-02", "02/01/2006", "02 Jan 2006", time.RFC3339} {
				if t, err := time.Parse(layout, d); err == nil {
					p.Date = t
					break
				}
			}
		}
		out = append(out, p)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}
