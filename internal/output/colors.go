package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// SprintfFunc formats and optionally colors a string
type SprintfFunc func(format string, a ...interface{}) string

// Colors holds the color functions for different output types
type Colors struct {
	Time      SprintfFunc
	Delay     SprintfFunc
	DelayHigh SprintfFunc
	OnTime    SprintfFunc
	Line      SprintfFunc
	Platform  SprintfFunc
	Dest      SprintfFunc
	Canceled  SprintfFunc
	Via       SprintfFunc
	Header    SprintfFunc
	Muted     SprintfFunc
	Warning   SprintfFunc

	// Category colors keyed by models.CategoryGroup
	Category map[string]SprintfFunc
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		c := &Colors{
			Time:      noColor,
			Delay:     noColor,
			DelayHigh: noColor,
			OnTime:    noColor,
			Line:      noColor,
			Platform:  noColor,
			Dest:      noColor,
			Canceled:  noColor,
			Via:       noColor,
			Header:    noColor,
			Muted:     noColor,
			Warning:   noColor,
			Category:  make(map[string]SprintfFunc),
		}
		for _, g := range models.CategoryGroups {
			c.Category[g] = noColor
		}
		return c
	}

	return &Colors{
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Delay:     color.New(color.FgYellow).SprintfFunc(),
		DelayHigh: color.New(color.FgRed, color.Bold).SprintfFunc(),
		OnTime:    color.New(color.FgGreen).SprintfFunc(),
		Line:      color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Platform:  color.New(color.FgMagenta).SprintfFunc(),
		Dest:      color.New(color.FgWhite).SprintfFunc(),
		Canceled:  color.New(color.FgRed, color.Bold).SprintfFunc(),
		Via:       color.New(color.FgHiBlack).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
		Warning:   color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Category: map[string]SprintfFunc{
			models.GroupIntercity:     color.New(color.FgYellow, color.Bold).SprintfFunc(),
			models.GroupIntercityDir:  color.New(color.FgHiYellow, color.Bold).SprintfFunc(),
			models.GroupInternational: color.New(color.FgRed, color.Bold).SprintfFunc(),
			models.GroupSprinter:      color.New(color.FgBlue, color.Bold).SprintfFunc(),
			models.GroupRegional:      color.New(color.FgGreen).SprintfFunc(),
			models.GroupOther:         color.New(color.FgWhite).SprintfFunc(),
		},
	}
}

// FormatDelay formats a delay value with appropriate color (fixed 4-char width)
func (c *Colors) FormatDelay(delay int) string {
	if delay == 0 {
		return "    "
	}
	if delay > 0 {
		if delay >= 10 {
			return c.DelayHigh("%+4d", delay)
		}
		return c.Delay("%+4d", delay)
	}
	return c.OnTime("%4d", delay)
}

// FormatCategory formats with the color of the category's filter group
func (c *Colors) FormatCategory(category, format string, a ...interface{}) string {
	fn, ok := c.Category[models.CategoryGroup(category)]
	if !ok {
		fn = c.Line
	}
	return fn(format, a...)
}

// FormatPlatform highlights a platform that differs from the planned one
func (c *Colors) FormatPlatform(format, platform string, changed bool) string {
	if changed {
		return c.Warning(format, platform)
	}
	return c.Platform(format, platform)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
