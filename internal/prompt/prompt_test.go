package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestMultiLineBody(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("first line\nsecond\n.\nnext\n.\n"), &out)
	got, ok := term.RequestText("Text", "")
	if !ok || got != "first line\nsecond" {
		t.Fatalf("got %q, %v", got, ok)
	}
	got, ok = term.RequestText("Numbered note", "")
	if !ok || got != "next" {
		t.Fatalf("second read %q, %v", got, ok)
	}
	if !strings.Contains(out.String(), "Numbered note") {
		t.Fatalf("prompt output %q", out.String())
	}
}

func TestEmptyCancels(t *testing.T) {
	term := NewTerminal(strings.NewReader(".\n"), &bytes.Buffer{})
	if got, ok := term.RequestText("Text", ""); ok || got != "" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestKeepsInitial(t *testing.T) {
	term := NewTerminal(strings.NewReader(".\n"), &bytes.Buffer{})
	if got, ok := term.RequestText("Edit text", "old"); !ok || got != "old" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestEOFWithoutTerminator(t *testing.T) {
	term := NewTerminal(strings.NewReader("tail"), &bytes.Buffer{})
	if got, ok := term.RequestText("Text", ""); !ok || got != "tail" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := term.RequestText("Text", ""); ok {
		t.Fatal("read past end of input")
	}
}
