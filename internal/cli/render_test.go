package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duplexsheet/duplexsheet/pkg/sheet/sink"
	"github.com/duplexsheet/duplexsheet/pkg/source"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()
	fn()
	w.Close()
	return string(<-done)
}

func writeTestPNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 0})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

// execute runs the CLI with args in a fresh command tree.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var err error
	out := captureStdout(t, func() {
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		err = root.ExecuteContext(context.Background())
	})
	return out, err
}

// pageArgs describe a 393x590 px page with 355x552 px of content.
var pageArgs = []string{"--width", "100", "--height", "150", "--dpi", "100", "--margin", "5", "--spacing", "5", "--no-cache"}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in"), filepath.Join(dir, "out")
	writeTestPNG(t, in, "a.png", 300, 300)
	writeTestPNG(t, in, "b.png", 300, 300)
	writeTestPNG(t, in, "wide.png", 400, 10)

	stdout, err := execute(t, append([]string{"render", "-i", in, "-o", out, "--pdf"}, pageArgs...)...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range append(sink.PrintOrder(2), sink.PDFName) {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s", name)
		}
	}
	for _, want := range []string{"Print order", "layout_sheet_02_back.png", "Rejected wide.png", "printable width is 355 px"} {
		if !bytes.Contains([]byte(stdout), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRenderCommandNothingToProcess(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in"), filepath.Join(dir, "out")
	writeTestPNG(t, in, "wide.png", 400, 10)

	stdout, err := execute(t, append([]string{"render", "-i", in, "-o", out}, pageArgs...)...)
	if err != nil {
		t.Fatalf("nothing to process should not fail: %v", err)
	}
	for _, want := range []string{"Nothing to process", ".studio3", ".webp"} {
		if !bytes.Contains([]byte(stdout), []byte(want)) {
			t.Errorf("output missing %q: %q", want, stdout)
		}
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("output dir should stay empty, has %d entries", len(entries))
	}
}

func TestExtensionList(t *testing.T) {
	got := extensionList()
	for _, ext := range source.Extensions() {
		if !strings.Contains(got, ext) {
			t.Errorf("extensionList() = %q, missing %s", got, ext)
		}
	}
	if !strings.HasSuffix(got, " or .webp") {
		t.Errorf("extensionList() = %q, want it to end with \" or .webp\"", got)
	}
}

func TestPlanCommandJSON(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in")
	writeTestPNG(t, in, "a.png", 150, 100)
	writeTestPNG(t, in, "b.png", 150, 100)

	stdout, err := execute(t, append([]string{"plan", "-i", in, "-f", "json"}, pageArgs...)...)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var m sink.Manifest
	if err := json.Unmarshal([]byte(stdout), &m); err != nil {
		t.Fatalf("plan output is not a manifest: %v\n%s", err, stdout)
	}
	if len(m.Pages) != 1 || len(m.Pages[0].Items) != 2 || m.Geometry.PageWidth != 393 {
		t.Errorf("manifest = %+v", m)
	}
	if len(m.PrintOrder) != 2 {
		t.Errorf("print order = %v", m.PrintOrder)
	}
}

func TestPlanCommandInvalidFormat(t *testing.T) {
	if _, err := execute(t, "plan", "-f", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCleanCommand(t *testing.T) {
	out := t.TempDir()
	for _, name := range []string{"layout_sheet_01_front.png", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(out, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := execute(t, "clean", "-o", out); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "layout_sheet_01_front.png")); !os.IsNotExist(err) {
		t.Error("sheet should be removed")
	}
	if _, err := os.Stat(filepath.Join(out, "keep.txt")); err != nil {
		t.Error("unrelated file should survive")
	}
}
