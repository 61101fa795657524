// Package testutil implements testing utilities for mdsanitizer.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/njchilds90/mdsanitizer"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LogWriter returns an [io.Writer] that logs each Write using t.Log.
func LogWriter(t *testing.T) io.Writer {
	return testWriter{t}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(b []byte) (int, error) {
	w.t.Logf("%s", b)
	return len(b), nil
}

// Slogger returns a [*slog.Logger] that writes each message,
// debug records included, using t.Log.
func Slogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(LogWriter(t), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SlogBuffer returns a debug-level [*slog.Logger] that writes each
// message to out.
func SlogBuffer() (lg *slog.Logger, out *bytes.Buffer) {
	var buf bytes.Buffer
	lg = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return lg, &buf
}

// Parse parses s as a fragment of an HTML body.
func Parse(t *testing.T, s string) *mdsanitizer.Document {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		t.Fatal(err)
	}
	return mdsanitizer.FromHTMLNodes(nodes)
}

// Markdown renders src the way the upstream pipeline does (GFM, raw
// HTML passed through) and parses the result.
func Markdown(t *testing.T, src string) *mdsanitizer.Document {
	t.Helper()
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatal(err)
	}
	return Parse(t, buf.String())
}

// Render returns the rendered document.
func Render(t *testing.T, d *mdsanitizer.Document) string {
	t.Helper()
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}
