package entities

import "time"

type MarketPrice struct {
	Commodity  string    `json:"commodity"`
	Variety    string    `json:"variety"`
	Market     string    `json:"market"`
	MinPrice   float64   `json:"min_price"`
	MaxPrice   float64   `json:"max_price"`
	ModalPrice float64   `json:"modal_price"`
	Unit       string    `json:"unit"`
	Date       time.Time `json:"date"`
}
