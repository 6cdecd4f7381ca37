package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Season string

const (
	SeasonKharif    Season = "Kharif"
	SeasonRabi      Season = "Rabi"
	SeasonZaid      Season = "Zaid"
	SeasonPerennial Season = "Perennial"
)

var Seasons = []Season{SeasonKharif, SeasonRabi, SeasonZaid, SeasonPerennial}

// ParseSeason accepts any casing and returns the canonical spelling.
func ParseSeason(s string) (Season, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Seasons {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

type Fertilizer string

const (
	FertilizerUrea    Fertilizer = "Urea"
	FertilizerDAP     Fertilizer = "DAP"
	FertilizerMOP     Fertilizer = "MOP"
	FertilizerOrganic Fertilizer = "Organic"
	FertilizerNPK     Fertilizer = "NPK"
)

var Fertilizers = []Fertilizer{FertilizerUrea, FertilizerDAP, FertilizerMOP, FertilizerOrganic, FertilizerNPK}

func ParseFertilizer(s string) (Fertilizer, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Fertilizers {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// Crop is one tracked planting entry. Yield is in tons, Area in acres.
type Crop struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Season     Season     `json:"season"`
	Fertilizer Fertilizer `json:"fertilizer"`
	Yield      float64    `json:"yield"`
	Area       float64    `json:"area"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// UnmarshalJSON tolerates the shapes older clients persisted: numbers stored
// as strings, empty strings and nulls all read as 0.
func (c *Crop) UnmarshalJSON(b []byte) error {
	type alias Crop
	var raw struct {
		alias
		ID    json.RawMessage `json:"id"`
		Yield json.RawMessage `json:"yield"`
		Area  json.RawMessage `json:"area"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = Crop(raw.alias)
	c.ID = int64(flexFloat(raw.ID))
	c.Yield = flexFloat(raw.Yield)
	c.Area = flexFloat(raw.Area)
	if s, ok := ParseSeason(string(c.Season)); ok {
		c.Season = s
	}
	if f, ok := ParseFertilizer(string(c.Fertilizer)); ok {
		c.Fertilizer = f
	}
	return nil
}

// ErrNoNumber is returned by ParseNumber for null, "" or an absent value.
var ErrNoNumber = errors.New("no number")

// ParseNumber reads a JSON number or a numeric string. NaN and infinities are rejected.
func ParseNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ErrNoNumber
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, ErrNoNumber
		}
	} else {
		s = string(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %s", s)
	}
	return v, nil
}

func flexFloat(raw json.RawMessage) float64 {
	v, err := ParseNumber(raw)
	if err != nil {
		return 0
	}
	return v
}
