package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/util"
)

// SettingsStore is the key/value persistence behind Preferences.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
}

// Preferences are the user-facing options edited in the settings dialog.
type Preferences struct {
	Theme            string
	Accent           string
	DisplayName      string
	ShowDescriptions bool
	SearchDelay      time.Duration
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:            config.ThemeDark,
		Accent:           config.AccentGreen,
		ShowDescriptions: true,
		SearchDelay:      config.SearchDebounce,
	}
}

// LoadPreferences overlays stored values on base. Unknown theme or accent
// names and out of range delays fall back to base.
func LoadPreferences(ctx context.Context, store SettingsStore, base Preferences) Preferences {
	p := base
	if v, ok := store.GetSetting(ctx, config.PrefTheme); ok && contains(ThemeModes, v) {
		p.Theme = v
	}
	if v, ok := store.GetSetting(ctx, config.PrefThemeColor); ok && contains(AccentNames, v) {
		p.Accent = v
	}
	if v, ok := store.GetSetting(ctx, config.PrefDisplayName); ok {
		p.DisplayName = v
	}
	if v, ok := store.GetSetting(ctx, config.PrefShowDescriptions); ok {
		p.ShowDescriptions = util.ParseBool(v, p.ShowDescriptions)
	}
	if v, ok := store.GetSetting(ctx, config.PrefSearchDelayMS); ok {
		ms := util.ParseIntOr(v, int(p.SearchDelay/time.Millisecond))
		p.SearchDelay = config.ClampSearchDelay(time.Duration(ms) * time.Millisecond)
	}
	return p
}

// SavePreferences writes every preference, stopping at the first error.
func SavePreferences(ctx context.Context, store SettingsStore, p Preferences) error {
	values := []struct{ key, value string }{
		{config.PrefTheme, p.Theme},
		{config.PrefThemeColor, p.Accent},
		{config.PrefDisplayName, p.DisplayName},
		{config.PrefShowDescriptions, util.FormatBool(p.ShowDescriptions)},
		{config.PrefSearchDelayMS, strconv.FormatInt(p.SearchDelay.Milliseconds(), 10)},
	}
	for _, kv := range values {
		if err := store.SetSetting(ctx, kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
