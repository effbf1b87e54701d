package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/example/snipmark/internal/capture"
	"github.com/example/snipmark/internal/clipboard"
	"github.com/example/snipmark/internal/config"
	"github.com/example/snipmark/internal/export"
	applog "github.com/example/snipmark/internal/log"
	"github.com/example/snipmark/internal/notify"
	"github.com/example/snipmark/internal/prompt"
	"github.com/example/snipmark/internal/render"
	"github.com/example/snipmark/internal/session"
	"github.com/example/snipmark/internal/theme"
	"github.com/example/snipmark/internal/ui"
)

var (
	captureScreenFn = capture.Screen
	openImageFn     = capture.FromFile
	runWindowFn     = func(w *ui.Window) error { return w.Run() }
)

// annotateCmd represents the annotate subcommand.
type annotateCmd struct {
	file       string
	mode       string
	display    string
	cursor     bool
	output     string
	configPath string
	region     string
	tool       string
	promptIn   string
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func annotateFlags(a *annotateCmd) *flag.FlagSet {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	fs.StringVar(&a.file, "file", "", "annotate an existing image instead of capturing the screen")
	fs.StringVar(&a.mode, "mode", "capture", "capture backend: capture (auto), portal or x11")
	fs.StringVar(&a.display, "display", "", "capture one monitor: index, \"primary\" or output name")
	fs.BoolVar(&a.cursor, "cursor", false, "include the mouse pointer in the capture")
	fs.StringVar(&a.output, "output", "", "also save the result to this PNG file")
	fs.StringVar(&a.configPath, "config", "", "read configuration from this file")
	fs.StringVar(&a.region, "region", "", "start editing this region (x,y,w,h) without selecting")
	fs.StringVar(&a.tool, "tool", "", "initial tool: "+modeList())
	fs.StringVar(&a.promptIn, "prompt", "window", "where text and note bodies are typed: window or terminal")
	return fs
}

func modeList() string {
	var names []string
	for m := session.ModeManipulate; m <= session.ModeArrow; m++ {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	a := &annotateCmd{root: r}
	a.fs = annotateFlags(a)
	a.fs.Usage = usageFunc(a)
	if err := a.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: a}
		}
		return nil, err
	}
	if a.fs.NArg() > 0 {
		return nil, &UsageError{of: a, msg: fmt.Sprintf("unexpected argument %q", a.fs.Arg(0))}
	}
	if _, err := capture.ParseMethod(a.mode); err != nil {
		return nil, &UsageError{of: a, msg: err.Error()}
	}
	if a.tool != "" {
		if _, err := session.ParseMode(a.tool); err != nil {
			return nil, &UsageError{of: a, msg: err.Error()}
		}
	}
	if a.region != "" {
		if _, err := parseRegion(a.region); err != nil {
			return nil, &UsageError{of: a, msg: err.Error()}
		}
	}
	switch a.promptIn {
	case "window", "terminal":
	default:
		return nil, &UsageError{of: a, msg: fmt.Sprintf("unknown -prompt %q", a.promptIn)}
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	img, err := a.acquire()
	if err != nil {
		return err
	}

	logger, id := applog.WithSession(a.logger().With("component", "annotate"))
	logger.Info("annotating", "size", img.Bounds().Size(), "source", a.source())

	th := theme.Default()
	if a.root != nil && a.activeTheme != nil {
		th = a.activeTheme
	}
	shadow := render.ShadowOptions{}
	if cfg.Annotate.Shadow {
		shadow = render.DefaultShadow()
	}
	fin := export.NewFinisher(clipboard.System{}, a.notifierOrNil(), export.Options{
		ConfirmDelay: cfg.Annotate.ConfirmDelay,
		Output:       a.output,
		SaveDir:      cfg.SaveDir,
		Shadow:       shadow,
	}, logger.With("component", "export"))

	win := ui.New(ui.Options{Title: "snipmark " + id[:8], Theme: th, Finisher: fin, Logger: logger})
	var input session.TextInput = win
	if a.promptIn == "terminal" {
		input = prompt.NewTerminal(os.Stdin, os.Stderr)
	}
	sess := session.New(img, sessionOptions(cfg, th, win, input, logger)...)
	if a.region != "" {
		r, _ := parseRegion(a.region)
		if !sess.Select(r) {
			return fmt.Errorf("region %s is outside the %v screen", a.region, img.Bounds().Size())
		}
	}
	if a.tool != "" {
		m, _ := session.ParseMode(a.tool)
		sess.SetMode(m)
	}
	win.Attach(sess)

	err = runWindowFn(win)
	if errors.Is(err, ui.ErrCancelled) {
		logger.Info("annotation cancelled")
		return nil
	}
	return err
}

func sessionOptions(cfg *config.Config, th *theme.Theme, win *ui.Window, input session.TextInput, logger *slog.Logger) []session.Option {
	ann := cfg.Annotate
	style := session.Style{
		StrokeColor:  ann.StrokeColor,
		StrokeWidth:  ann.StrokeWidth,
		PenColor:     ann.PenColor,
		PenWidth:     ann.PenWidth,
		TextColor:    ann.TextColor,
		FontSize:     ann.FontSize,
		MaskColor:    th.Mask,
		MosaicSize:   ann.MosaicSize,
		BubbleColor:  th.BubbleFill,
		BubbleBorder: th.BubbleBorder,
	}
	return []session.Option{
		session.WithListener(win),
		session.WithTextInput(input),
		session.WithStyle(style),
		session.WithInset(ann.Inset),
		session.WithDragMode(ann.DragMode),
		session.WithPalette(render.Palette{NoteBadge: th.NoteBadge, NoteNumber: th.NoteNumber}),
		session.WithLogger(logger.With("component", "session")),
	}
}

func (a *annotateCmd) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		if a.root != nil && a.config != nil {
			return a.config, nil
		}
		return config.New(), nil
	}
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", a.configPath, err)
	}
	return cfg, nil
}

func (a *annotateCmd) source() string {
	if a.file != "" {
		return a.file
	}
	return a.mode
}

// acquire loads the image to annotate from -file or the screen.
func (a *annotateCmd) acquire() (*image.RGBA, error) {
	if a.file != "" {
		img, err := openImageFn(a.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", a.file, err)
		}
		return img, nil
	}
	method, err := capture.ParseMethod(a.mode)
	if err != nil {
		return nil, err
	}
	img, err := captureScreenFn(capture.Options{Method: method, Display: a.display, IncludeCursor: a.cursor})
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	detail := "screen"
	if a.display != "" {
		detail = "display " + a.display
	}
	a.root.notifyCapture(detail, img)
	return img, nil
}

func (a *annotateCmd) notifierOrNil() *notify.Notifier {
	if a.root == nil {
		return nil
	}
	return a.notifier
}

// parseRegion reads "x,y,w,h".
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region must be x,y,w,h, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region value %q", p)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q has no area", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
