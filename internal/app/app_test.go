package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trackview/pkg/api"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TRACKVIEW_CONFIG", "")
	fn := filepath.Join(dir, "g.fa")
	if err := os.WriteFile(fn, []byte(">chr1\n"+strings.Repeat("GGCC", 100)+"\n"), 0o644); err != nil {
		t.Fatalf("write genome: %v", err)
	}
	return fn
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "run.tv")
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return fn
}

func TestRunBatch_OK(t *testing.T) {
	genome := isolate(t)
	script := writeScript(t, "snapshot first\n")
	var out, errBuf bytes.Buffer
	code := RunBatch(context.Background(), []string{script, "--track", genome, "--bins", "4"}, &out, &errBuf)
	if code != ExitOK {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	var f api.FrameV1
	if err := json.Unmarshal(out.Bytes(), &f); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if f.Label != "first" || len(f.Tracks) != 1 || !f.Tracks[0].Windows[0].Ready {
		t.Fatalf("unexpected snapshot %+v", f)
	}
	if got := f.Tracks[0].Windows[0].Values; len(got) != 4 || got[0] != 1 {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestRunBatch_ConfiguredTracksLoadedBeforeScript(t *testing.T) {
	genome := isolate(t)
	cfg := writeScript(t, "[browser]\nlocus = \"chr1:1-200\"\n\n[[tracks]]\nname = \"cfg\"\nfasta = \""+genome+"\"\nbins = 2\n")
	script := writeScript(t, "snapshot first\n")
	var out, errBuf bytes.Buffer
	code := RunBatch(context.Background(), []string{script, "--config", cfg, "--track", genome, "--bins", "4"}, &out, &errBuf)
	if code != ExitOK {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	var f api.FrameV1
	if err := json.Unmarshal(out.Bytes(), &f); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if len(f.Tracks) != 2 || f.Viewports[0].End != 200 {
		t.Fatalf("unexpected snapshot %+v", f)
	}
	for _, tr := range f.Tracks {
		w := tr.Windows[0]
		if !w.Ready || len(w.Values) == 0 || w.Values[0] != 1 {
			t.Fatalf("%s not loaded before the first command: %+v", tr.ID, w)
		}
	}
}

func TestRunBatch_Stdin(t *testing.T) {
	genome := isolate(t)
	prev := stdin
	stdin = strings.NewReader("goto chr1:1-100\nrepaint\nsnapshot\n")
	defer func() { stdin = prev }()

	var out, errBuf bytes.Buffer
	if code := RunBatch(context.Background(), []string{"--script", "-", "--genome", genome, "--track", genome}, &out, &errBuf); code != ExitOK {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), `"end":100`) {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestRunBatch_ExitCodes(t *testing.T) {
	genome := isolate(t)
	cases := []struct {
		name string
		argv []string
		want int
	}{
		{"help", []string{"-h"}, ExitOK},
		{"version", []string{"--version"}, ExitOK},
		{"no script", []string{"--track", genome}, ExitUsage},
		{"missing script file", []string{filepath.Join(t.TempDir(), "none.tv"), "--track", genome}, ExitUsage},
		{"no genome", []string{writeScript(t, "repaint\n")}, ExitUsage},
		{"bad command", []string{writeScript(t, "explode\n"), "--track", genome}, ExitRuntime},
		{"bad start locus", []string{writeScript(t, "repaint\n"), "--track", genome, "--config", writeScript(t, "[browser]\nlocus = \"chrQ\"\n")}, ExitUsage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out, errBuf bytes.Buffer
			if got := RunBatch(context.Background(), c.argv, &out, &errBuf); got != c.want {
				t.Fatalf("want exit %d, got %d (stderr=%s)", c.want, got, errBuf.String())
			}
		})
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	genome := isolate(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	if code := RunBatch(ctx, []string{writeScript(t, "repaint\n"), "--track", genome}, &out, &errBuf); code != ExitCancel {
		t.Fatalf("want %d, got %d", ExitCancel, code)
	}
}

func TestRunInteractive_Usage(t *testing.T) {
	isolate(t)
	var out, errBuf bytes.Buffer
	if code := RunInteractive(context.Background(), []string{"-h"}, &out, &errBuf); code != ExitOK {
		t.Fatalf("help exit %d", code)
	}
	if !strings.Contains(out.String(), "Usage of trackview") {
		t.Fatalf("usage missing: %q", out.String())
	}
	if code := RunInteractive(context.Background(), []string{"--workers", "-2"}, &out, &errBuf); code != ExitUsage {
		t.Fatalf("want usage exit, got %d", code)
	}
	if code := RunInteractive(context.Background(), nil, &out, &errBuf); code != ExitUsage {
		t.Fatalf("no genome must be a usage error, got %d", code)
	}
}
