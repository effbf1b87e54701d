package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of  HelpData
	msg string
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.msg != "" {
		return e.msg + "\n\n" + help
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		slog.Error("render help template", "template", e.of.Template(), "err", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc replaces a FlagSet's default usage output with the template.
func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprintln(os.Stderr, (&UsageError{of: h}).Error())
	}
}

type helpCmd struct {
	r     *root
	topic string
}

func (h *helpCmd) Run() error {
	var of HelpData = h.r
	switch h.topic {
	case "annotate":
		of = &annotateCmd{root: h.r, fs: annotateFlags(&annotateCmd{})}
	case "draw":
		d := &drawCmd{root: h.r}
		d.fs = drawFlags(d)
		of = d
	case "config":
		of = &configCmd{root: h.r}
	case "version":
		of = &versionCmd{r: h.r}
	}
	fmt.Print((&UsageError{of: of}).Error())
	return nil
}

func (r *root) Template() string {
	return "root.txt"
}

func (a *annotateCmd) Template() string {
	return "annotate.txt"
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}

func (v *versionCmd) Program() string        { return v.r.Program() + " version" }
func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }
