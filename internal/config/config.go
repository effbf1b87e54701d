package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/snipmark/internal/theme"
)

// Notify holds desktop notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Annotate holds the initial tool style and session behaviour.
type Annotate struct {
	StrokeColor  color.RGBA
	StrokeWidth  int
	PenColor     color.RGBA
	PenWidth     int
	TextColor    color.RGBA
	FontSize     int
	MosaicSize   int
	Inset        int
	DragMode     bool
	Shadow       bool
	ConfirmDelay time.Duration
}

// Log mirrors the SNIPMARK_LOG_* variables; the environment wins.
type Log struct {
	Level  string
	Format string
	File   string
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	Notify   Notify
	Annotate Annotate
	Log      Log
	Themes   map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	red := color.RGBA{255, 0, 0, 255}
	return &Config{
		Annotate: Annotate{
			StrokeColor:  red,
			StrokeWidth:  2,
			PenColor:     red,
			PenWidth:     2,
			TextColor:    red,
			FontSize:     16,
			MosaicSize:   10,
			Inset:        1,
			DragMode:     true,
			ConfirmDelay: 500 * time.Millisecond,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	a := c.Annotate
	sb.WriteString("[annotate]\n")
	fmt.Fprintf(&sb, "stroke_color = %s\n", theme.Hex(a.StrokeColor))
	fmt.Fprintf(&sb, "stroke_width = %d\n", a.StrokeWidth)
	fmt.Fprintf(&sb, "pen_color = %s\n", theme.Hex(a.PenColor))
	fmt.Fprintf(&sb, "pen_width = %d\n", a.PenWidth)
	fmt.Fprintf(&sb, "text_color = %s\n", theme.Hex(a.TextColor))
	fmt.Fprintf(&sb, "font_size = %d\n", a.FontSize)
	fmt.Fprintf(&sb, "mosaic_size = %d\n", a.MosaicSize)
	fmt.Fprintf(&sb, "inset = %d\n", a.Inset)
	fmt.Fprintf(&sb, "drag_mode = %v\n", a.DragMode)
	fmt.Fprintf(&sb, "shadow = %v\n", a.Shadow)
	fmt.Fprintf(&sb, "confirm_delay_ms = %d\n", a.ConfirmDelay.Milliseconds())
	sb.WriteString("\n")

	if c.Log != (Log{}) {
		sb.WriteString("[log]\n")
		if c.Log.Level != "" {
			fmt.Fprintf(&sb, "level = %s\n", c.Log.Level)
		}
		if c.Log.Format != "" {
			fmt.Fprintf(&sb, "format = %s\n", c.Log.Format)
		}
		if c.Log.File != "" {
			fmt.Fprintf(&sb, "file = %s\n", c.Log.File)
		}
		sb.WriteString("\n")
	}

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
