package model

import "fmt"

// Theme values accepted by the backend.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Density values accepted by the backend.
const (
	DensityComfortable = "comfortable"
	DensityCompact     = "compact"
)

// DisplaySettings are presentation preferences. They never change stored
// financial data.
type DisplaySettings struct {
	Theme                      string `json:"theme"`
	Density                    string `json:"density"`
	ShowArchived               bool   `json:"show_archived"`
	ShowTotalsInFamilyCurrency bool   `json:"show_totals_in_family_currency"`
}

// Validate checks the enumerated fields.
func (d DisplaySettings) Validate() error {
	switch d.Theme {
	case "", ThemeSystem, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown theme %q", d.Theme)
	}
	switch d.Density {
	case "", DensityComfortable, DensityCompact:
	default:
		return fmt.Errorf("unknown density %q", d.Density)
	}
	return nil
}

// UserSettingsSummary is the settings document of one user.
type UserSettingsSummary struct {
	SupportedCurrencies []string        `json:"supported_currencies"`
	FamilyCurrency      string          `json:"family_currency"`
	Currency            string          `json:"currency"`
	Locale              string          `json:"locale"`
	Display             DisplaySettings `json:"display"`
}

// SupportsCurrency reports whether code is listed as supported.
// An empty list means the backend did not restrict currencies.
func (s UserSettingsSummary) SupportsCurrency(code string) bool {
	if len(s.SupportedCurrencies) == 0 {
		return true
	}
	for _, c := range s.SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
