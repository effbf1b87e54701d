package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/export"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/shape"
	"github.com/example/snipmark/internal/theme"
)

var (
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
)

// drawCmd adds one shape to an image without opening a window. It goes
// through the same store and compositor as an interactive session.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	width         int
	size          int
	number        int
	shape         string
	points        []image.Point
	text          string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		c, err := theme.ParseColor(spec)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func drawFlags(d *drawCmd) *flag.FlagSet {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.file, "input", "", "input image file (alias)")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "red", "stroke or text color name or hex value")
	fs.IntVar(&d.width, "width", 2, "stroke width in pixels")
	fs.IntVar(&d.size, "size", 0, "font size for text and notes, block size for masks")
	fs.IntVar(&d.number, "number", 1, "number shown on a note badge")
	return fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	d := &drawCmd{root: r}
	d.fs = drawFlags(d)
	d.fs.Usage = usageFunc(d)

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := d.fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: d}
		}
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.shape {
	case "rect", "ellipse", "arrow":
		d.points, err = expectPoints(remaining, 2, 2, d.shape)
	case "line", "pen", "mask":
		d.points, err = expectPoints(remaining, 2, -1, d.shape)
	case "text", "note":
		if len(remaining) < 3 {
			return nil, fmt.Errorf("%s requires x y and content", d.shape)
		}
		d.points, err = expectPoints(remaining[:2], 1, 1, d.shape)
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("%s content cannot be empty", d.shape)
		}
		// "\n" in arguments starts a new line.
		d.text = strings.ReplaceAll(d.text, `\n`, "\n")
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}
	if d.color, err = parseColor(d.colorSpec); err != nil {
		return nil, err
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file == "" {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
			d.output = d.file
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	d.width = max(d.width, session.MinWidth)
	return d, nil
}

func expectPoints(args []string, minPts, maxPts int, shape string) ([]image.Point, error) {
	if len(args)%2 != 0 || len(args)/2 < minPts || (maxPts > 0 && len(args)/2 > maxPts) {
		if minPts == maxPts {
			return nil, fmt.Errorf("%s requires %d integer arguments", shape, 2*minPts)
		}
		return nil, fmt.Errorf("%s requires at least %d x y pairs", shape, minPts)
	}
	pts := make([]image.Point, len(args)/2)
	for i := range pts {
		x, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i])
		}
		y, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i+1])
		}
		pts[i] = image.Pt(x, y)
	}
	return pts, nil
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	th := theme.Default()
	if d.root != nil && d.activeTheme != nil {
		th = d.activeTheme
	}
	var st shape.Store
	st.Append(d.buildShape(src.Bounds(), th))
	out := render.Flatten(src, &st, render.Palette{NoteBadge: th.NoteBadge, NoteNumber: th.NoteNumber})

	if err := export.SavePNG(d.output, out); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifySave(saved)

	if d.toClipboard {
		if err := writeClipboardFn(out); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return capture.FromFile(d.file)
}

// buildShape turns the parsed arguments into a shape. canvas is the image
// bounds, used to wrap text at the right edge.
func (d *drawCmd) buildShape(canvas image.Rectangle, th *theme.Theme) shape.Shape {
	p := d.points
	switch d.shape {
	case "rect":
		return &shape.Rect{Rect: image.Rectangle{Min: p[0], Max: p[1]}.Canon(), Width: d.width, Color: d.color}
	case "ellipse":
		return &shape.Ellipse{Rect: image.Rectangle{Min: p[0], Max: p[1]}.Canon(), Width: d.width, Color: d.color}
	case "arrow":
		return &shape.ArrowLine{Points: p, Width: d.width, Color: d.color}
	case "mask":
		size := d.size
		if size <= 0 {
			size = session.DefaultStyle().MosaicSize
		}
		size = min(max(size, session.MinMosaicSize), session.MaxMosaicSize)
		return &shape.MaskStroke{Stroke: shape.Stroke{Points: p, Width: size, Color: th.Mask}}
	case "text":
		size := d.fontSize()
		body := d.text
		ext := render.Fonts{}.TextSize(body, size, canvas.Max.X-p[0].X)
		return &shape.TextBox{Rect: image.Rectangle{Min: p[0], Max: p[0].Add(ext)}, Body: body, FontSize: size, Color: d.color}
	case "note":
		size := d.fontSize()
		anchor := image.Rectangle{Min: p[0], Max: p[0].Add(image.Pt(shape.NoteSize, shape.NoteSize))}
		return &shape.Note{
			Anchor:       anchor,
			Number:       d.number,
			Body:         d.text,
			FontSize:     size,
			Color:        d.color,
			Bubble:       shape.BubbleFor(anchor, render.Fonts{}.NoteSize(d.text, size)),
			BubbleColor:  th.BubbleFill,
			BubbleBorder: th.BubbleBorder,
		}
	}
	// line and pen
	return &shape.PenStroke{Stroke: shape.Stroke{Points: p, Width: d.width, Color: d.color}}
}

func (d *drawCmd) fontSize() int {
	if d.size <= 0 {
		return session.DefaultStyle().FontSize
	}
	return min(max(d.size, session.MinFontSize), session.MaxFontSize)
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"input":          {},
	"output":         {},
	"from-clipboard": {},
	"to-clipboard":   {},
	"color":          {},
	"width":          {},
	"size":           {},
	"number":         {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"to-clipboard":   {},
}

// splitDrawArgs separates flags from positionals so flags may follow the
// shape arguments. Negative coordinates stay positional.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
