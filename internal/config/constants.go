package config

import "time"

// List paging and search.
const (
	PageSize       = 10
	SearchDebounce = 300 * time.Millisecond

	MinSearchDebounce  = 100 * time.Millisecond
	MaxSearchDebounce  = 1000 * time.Millisecond
	SearchDebounceStep = 100 * time.Millisecond
)

// Database settings.
const (
	AppName        = "aella"
	DBFileName     = "aella.db"
	LogFileName    = "aella.log"
	ConfigFileName = "config.toml"
	QueryTimeout   = 5 * time.Second
)

// Preference keys stored in the settings table.
const (
	PrefTheme            = "theme"
	PrefThemeColor       = "theme_color"
	PrefDisplayName      = "display_name"
	PrefShowDescriptions = "show_descriptions"
	PrefSearchDelayMS    = "search_delay_ms"
)

// Theme modes and accent colors.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	AccentGreen  = "Green"
	AccentBlue   = "Blue"
	AccentPurple = "Purple"
)
