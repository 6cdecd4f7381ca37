package service

import "context"

type Settings struct {
	DarkMode bool `json:"darkMode"`
}

type SettingsService interface {
	Get(ctx context.Context) Settings
	SetDarkMode(ctx context.Context, on bool) (Settings, error)
	ToggleDarkMode(ctx context.Context) (Settings, error)
}
