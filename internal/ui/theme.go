package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonwatch/internal/config"
)

// Theme defines the colors used by the conjuration log frame.
type Theme struct {
	KeyColor       color.Color // unchanged keys
	ChangedColor   color.Color // changed keys and values
	ValueColor     color.Color // unchanged values
	HeaderFG       color.Color // Key / Value header row
	TitleFG        color.Color // title in the top border
	SeparatorColor color.Color // border lines
	BorderStyle    string      // normal|rounded
	SelectedFG     color.Color
	SelectedBG     color.Color
	FooterFG       color.Color
}

// fallbackDefaultTheme is used for any color a config theme leaves empty.
func fallbackDefaultTheme() Theme {
	return Theme{
		KeyColor:       lipgloss.Color("81"),  // cyan keys
		ChangedColor:   lipgloss.Color("220"), // yellow for divergence
		ValueColor:     lipgloss.Color("252"),
		HeaderFG:       lipgloss.Color("255"),
		TitleFG:        lipgloss.Color("81"),
		SeparatorColor: lipgloss.Color("238"),
		BorderStyle:    "normal",
		SelectedFG:     lipgloss.Color("255"),
		SelectedBG:     lipgloss.Color("24"),
		FooterFG:       lipgloss.Color("244"),
	}
}

// ThemeFromConfig builds a Theme from a config color table, keeping the
// fallback for empty fields.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := fallbackDefaultTheme()
	set := func(val config.ColorValue, dst *color.Color) {
		if v := strings.TrimSpace(string(val)); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(cfg.KeyColor, &th.KeyColor)
	set(cfg.ChangedColor, &th.ChangedColor)
	set(cfg.ValueColor, &th.ValueColor)
	set(cfg.HeaderColor, &th.HeaderFG)
	set(cfg.TitleColor, &th.TitleFG)
	set(cfg.BorderColor, &th.SeparatorColor)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.FooterColor, &th.FooterFG)
	if cfg.BorderStyle != "" {
		th.BorderStyle = cfg.BorderStyle
	}
	th.BorderStyle = normalizeBorderStyle(th.BorderStyle)
	return th
}

// ThemeByName resolves a named theme from the config, falling back to the
// built-in palette when the name is unknown.
func ThemeByName(cfg config.Config, name string) Theme {
	if tc, ok := cfg.Themes[strings.TrimSpace(name)]; ok {
		return ThemeFromConfig(tc)
	}
	return fallbackDefaultTheme()
}

func normalizeBorderStyle(val string) string {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "rounded", "round":
		return "rounded"
	default:
		return "normal"
	}
}

func borderForStyle(style string) lipgloss.Border {
	switch normalizeBorderStyle(style) {
	case "rounded":
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// styles are the lipgloss styles derived from a theme. With noColor every
// style is plain, apart from bold and reverse which survive monochrome.
type styles struct {
	key          lipgloss.Style
	changedKey   lipgloss.Style
	value        lipgloss.Style
	changedValue lipgloss.Style
	header       lipgloss.Style
	selected     lipgloss.Style
	footer       lipgloss.Style
	border       lipgloss.Style
	title        lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			key:          plain,
			changedKey:   plain.Bold(true),
			value:        plain,
			changedValue: plain.Bold(true),
			header:       plain.Bold(true),
			selected:     plain.Reverse(true),
			footer:       plain,
			border:       plain,
			title:        plain.Bold(true),
		}
	}
	return styles{
		key:          lipgloss.NewStyle().Foreground(th.KeyColor),
		changedKey:   lipgloss.NewStyle().Foreground(th.ChangedColor),
		value:        lipgloss.NewStyle().Foreground(th.ValueColor),
		changedValue: lipgloss.NewStyle().Foreground(th.ChangedColor),
		header:       lipgloss.NewStyle().Foreground(th.HeaderFG).Bold(true),
		selected:     lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG),
		footer:       lipgloss.NewStyle().Foreground(th.FooterFG),
		border:       lipgloss.NewStyle().Foreground(th.SeparatorColor),
		title:        lipgloss.NewStyle().Foreground(th.TitleFG).Bold(true),
	}
}
