package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/snipmark/internal/theme"
)

// Parse reads configuration in RC format.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = cfg.theme(name)
			}
			continue
		}

		// "=" wins over ":" so "key = #RRGGBB" and "Key: #RRGGBB" both parse.
		sep := "="
		if !strings.Contains(line, "=") {
			sep = ":"
		}
		key, value, ok := strings.Cut(line, sep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)

		var err error
		if current != nil {
			err = current.Set(key, value)
		} else {
			err = cfg.set(section, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

// theme returns the named inline theme, creating it from the defaults.
func (c *Config) theme(name string) *theme.Theme {
	if t, ok := c.Themes[name]; ok {
		return t
	}
	t := theme.Default()
	t.Name = name
	c.Themes[name] = t
	return t
}

func (c *Config) set(section, key, value string) error {
	switch section {
	case "":
		return setRootField(c, key, value)
	case "notify":
		return setNotifyField(&c.Notify, key, value)
	case "annotate":
		return setAnnotateField(&c.Annotate, key, value)
	case "log":
		return setLogField(&c.Log, key, value)
	}
	return nil
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setAnnotateField(a *Annotate, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "stroke_color":
		a.StrokeColor, err = theme.ParseColor(value)
	case "pen_color":
		a.PenColor, err = theme.ParseColor(value)
	case "text_color":
		a.TextColor, err = theme.ParseColor(value)
	case "stroke_width":
		a.StrokeWidth, err = strconv.Atoi(value)
	case "pen_width":
		a.PenWidth, err = strconv.Atoi(value)
	case "font_size":
		a.FontSize, err = strconv.Atoi(value)
	case "mosaic_size":
		a.MosaicSize, err = strconv.Atoi(value)
	case "inset":
		a.Inset, err = strconv.Atoi(value)
	case "drag_mode":
		a.DragMode, err = strconv.ParseBool(value)
	case "shadow":
		a.Shadow, err = strconv.ParseBool(value)
	case "confirm_delay_ms":
		var ms int
		ms, err = strconv.Atoi(value)
		a.ConfirmDelay = time.Duration(ms) * time.Millisecond
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func setLogField(l *Log, key, value string) error {
	switch strings.ToLower(key) {
	case "level":
		l.Level = value
	case "format":
		l.Format = value
	case "file":
		l.File = value
	}
	return nil
}
