// Package export delivers a finished frame: it puts the image on the
// clipboard, confirms the clipboard took it, and optionally writes a PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/example/snipmark/internal/notify"
	"github.com/example/snipmark/internal/render"
)

// ErrNotConfirmed means the clipboard did not hold an image of the exported
// size when it was read back.
var ErrNotConfirmed = errors.New("clipboard did not confirm the image")

// Clipboard is the image clipboard used for export.
type Clipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// Options controls a Finisher.
type Options struct {
	// ConfirmDelay is how long to wait before reading the clipboard back.
	ConfirmDelay time.Duration
	// Output is an explicit PNG path. When empty and SaveDir is set, a
	// timestamped file is written there.
	Output  string
	SaveDir string
	Shadow  render.ShadowOptions
}

// Finisher exports frames.
type Finisher struct {
	clip   Clipboard
	notify *notify.Notifier
	opts   Options
	log    *slog.Logger

	after func(d time.Duration, f func())
	now   func() time.Time
}

// NewFinisher creates a Finisher. n may be nil.
func NewFinisher(clip Clipboard, n *notify.Notifier, opts Options, log *slog.Logger) *Finisher {
	if log == nil {
		log = slog.Default()
	}
	return &Finisher{
		clip:   clip,
		notify: n,
		opts:   opts,
		log:    log,
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:    time.Now,
	}
}

// Finish writes frame to the clipboard and, if configured, to disk. The
// returned error covers the synchronous part. done is called once, from
// another goroutine, after the clipboard was read back: with nil when the
// image is there and ErrNotConfirmed otherwise.
func (f *Finisher) Finish(frame *image.RGBA, done func(error)) error {
	out := render.Shadow(frame, f.opts.Shadow)
	if err := f.clip.WriteImage(out); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	f.log.Debug("image written to clipboard", "size", out.Bounds().Size())

	if path := f.outputPath(); path != "" {
		if err := SavePNG(path, out); err != nil {
			return err
		}
		f.log.Info("saved", "path", path)
		f.notify.Save(path)
	}

	want := out.Bounds().Size()
	f.after(f.opts.ConfirmDelay, func() {
		err := f.confirm(want)
		if err == nil {
			f.notify.Copy(fmt.Sprintf("%dx%d image", want.X, want.Y))
		} else {
			f.log.Warn("clipboard not confirmed", "err", err)
		}
		if done != nil {
			done(err)
		}
	})
	return nil
}

func (f *Finisher) confirm(want image.Point) error {
	img, err := f.clip.ReadImage()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotConfirmed, err)
	}
	if got := img.Bounds().Size(); got != want {
		return fmt.Errorf("%w: clipboard holds %v, exported %v", ErrNotConfirmed, got, want)
	}
	return nil
}

func (f *Finisher) outputPath() string {
	if f.opts.Output != "" {
		return f.opts.Output
	}
	if f.opts.SaveDir == "" {
		return ""
	}
	return filepath.Join(f.opts.SaveDir, FileName(f.now()))
}

// FileName is the default name for an export taken at t.
func FileName(t time.Time) string {
	return "snipmark-" + t.Format("20060102-150405") + ".png"
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
