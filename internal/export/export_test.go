package export

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/snipmark/internal/render"
)

type fakeClipboard struct {
	img      image.Image
	writeErr error
	// readBack replaces what ReadImage returns when set.
	readBack image.Image
}

func (c *fakeClipboard) WriteImage(img image.Image) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.img = img
	return nil
}

func (c *fakeClipboard) ReadImage() (image.Image, error) {
	if c.readBack != nil {
		return c.readBack, nil
	}
	if c.img == nil {
		return nil, errors.New("empty")
	}
	return c.img, nil
}

func immediate(f *Finisher) *Finisher {
	f.after = func(_ time.Duration, fn func()) { fn() }
	f.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	return f
}

func frame() *image.RGBA { return image.NewRGBA(image.Rect(0, 0, 40, 30)) }

func TestFinishConfirms(t *testing.T) {
	clip := &fakeClipboard{}
	f := immediate(NewFinisher(clip, nil, Options{}, nil))
	var got error = errors.New("not called")
	if err := f.Finish(frame(), func(err error) { got = err }); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got != nil {
		t.Fatalf("confirm = %v", got)
	}
	if clip.img.Bounds().Size() != image.Pt(40, 30) {
		t.Fatalf("clipboard size = %v", clip.img.Bounds().Size())
	}
}

func TestFinishNotConfirmedOnSizeMismatch(t *testing.T) {
	clip := &fakeClipboard{readBack: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	f := immediate(NewFinisher(clip, nil, Options{}, nil))
	var got error
	if err := f.Finish(frame(), func(err error) { got = err }); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !errors.Is(got, ErrNotConfirmed) {
		t.Fatalf("confirm = %v, want ErrNotConfirmed", got)
	}
}

func TestFinishWriteError(t *testing.T) {
	boom := errors.New("boom")
	f := immediate(NewFinisher(&fakeClipboard{writeErr: boom}, nil, Options{}, nil))
	called := false
	if err := f.Finish(frame(), func(error) { called = true }); !errors.Is(err, boom) {
		t.Fatalf("Finish = %v", err)
	}
	if called {
		t.Fatal("confirm scheduled after failed write")
	}
}

func TestFinishSavesToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	f := immediate(NewFinisher(&fakeClipboard{}, nil, Options{SaveDir: dir}, nil))
	if err := f.Finish(frame(), nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	path := filepath.Join(dir, "snipmark-20240305-140709.png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file: %v", err)
	}
}

func TestShadowAppliedBeforeExport(t *testing.T) {
	clip := &fakeClipboard{}
	out := filepath.Join(t.TempDir(), "out.png")
	opts := Options{Output: out, Shadow: render.ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Opacity: 0.5}}
	f := immediate(NewFinisher(clip, nil, opts, nil))
	var got error
	if err := f.Finish(frame(), func(err error) { got = err }); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got != nil {
		t.Fatalf("confirm = %v", got)
	}
	if size := clip.img.Bounds().Size(); size.X <= 40 || size.Y <= 30 {
		t.Fatalf("shadowed size = %v", size)
	}
	fh, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer fh.Close()
	cfg, _, err := image.DecodeConfig(fh)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if image.Pt(cfg.Width, cfg.Height) != clip.img.Bounds().Size() {
		t.Fatalf("saved %dx%d, clipboard %v", cfg.Width, cfg.Height, clip.img.Bounds().Size())
	}
}
