package emit_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"dfsorter/internal/discover"
	"dfsorter/internal/emit"
	"dfsorter/internal/fault"
	"dfsorter/internal/logging"
	"dfsorter/internal/ranking"
	"dfsorter/internal/testsupport"
)

func mappingsFor(names ...string) []emit.Mapping {
	files := make([]discover.AudioFile, len(names))
	for i, n := range names {
		files[i] = discover.NewAudioFile(n)
	}
	return emit.Assign(ranking.Identity(files))
}

func newLayout(t *testing.T) emit.Layout {
	t.Helper()
	base := t.TempDir()
	return emit.Layout{
		InputDir:   filepath.Join(base, "input"),
		OutputDir:  filepath.Join(base, "output"),
		HeaderFile: filepath.Join(base, "define.h"),
		LockPath:   filepath.Join(base, ".output.lock"),
		MacroName:  "DFPLAYER_AUDIO_FILES",
	}
}

func TestAssignNumbersFromOne(t *testing.T) {
	mappings := mappingsFor("intro.mp3", "outro.wav", "chime.WMA")
	var got []string
	for i, m := range mappings {
		if m.Index != i+1 {
			t.Fatalf("mapping %d has index %d", i, m.Index)
		}
		got = append(got, m.TargetName())
	}
	if diff := cmp.Diff([]string{"0001.mp3", "0002.wav", "0003.WMA"}, got); diff != "" {
		t.Fatalf("target names mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := emit.RenderHeader(&buf, "DFPLAYER_AUDIO_FILES", mappingsFor("intro.mp3", "outro.wav")); err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}
	want := "#ifndef DFPLAYER_AUDIO_FILES\n" +
		"#define DFPLAYER_AUDIO_FILES\n" +
		"\n" +
		"#define intro 1\n" +
		"#define outro 2\n" +
		"\n" +
		"#endif\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHeaderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := emit.RenderHeader(&buf, "TRACKS", nil); err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}
	if want := "#ifndef TRACKS\n#define TRACKS\n\n\n#endif\n"; buf.String() != want {
		t.Fatalf("unexpected empty header %q", buf.String())
	}
}

func TestWriteCopiesAndReplacesOutput(t *testing.T) {
	layout := newLayout(t)
	layout.Verify = true
	testsupport.WriteAudioFiles(t, layout.InputDir, "intro.mp3", "outro.wav")
	testsupport.WriteFile(t, filepath.Join(layout.OutputDir, "0099.mp3"), "stale")

	mappings := mappingsFor("intro.mp3", "outro.wav")
	if err := emit.Write(context.Background(), layout, mappings, logging.NewNop()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if diff := cmp.Diff([]string{"0001.mp3", "0002.wav"}, testsupport.ListDir(t, layout.OutputDir)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	got, err := os.ReadFile(filepath.Join(layout.OutputDir, "0002.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "audio:outro.wav" {
		t.Fatalf("0002.wav holds %q", got)
	}
	header, err := os.ReadFile(layout.HeaderFile)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if !bytes.Contains(header, []byte("#define outro 2\n")) {
		t.Fatalf("header missing outro mapping: %q", header)
	}
}

func TestWriteRefusesWhenLocked(t *testing.T) {
	layout := newLayout(t)
	testsupport.WriteAudioFiles(t, layout.InputDir, "intro.mp3")

	held := flock.New(layout.LockPath)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock() //nolint:errcheck

	err = emit.Write(context.Background(), layout, mappingsFor("intro.mp3"), logging.NewNop())
	if !errors.Is(err, fault.ErrLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if _, statErr := os.Stat(layout.OutputDir); !os.IsNotExist(statErr) {
		t.Fatalf("expected output dir untouched, stat err=%v", statErr)
	}
}

func TestWriteLeavesReusableLockFile(t *testing.T) {
	layout := newLayout(t)
	testsupport.WriteAudioFiles(t, layout.InputDir, "intro.mp3")
	mappings := mappingsFor("intro.mp3")

	for i := 0; i < 2; i++ {
		if err := emit.Write(context.Background(), layout, mappings, logging.NewNop()); err != nil {
			t.Fatalf("Write #%d: %v", i+1, err)
		}
		if _, err := os.Stat(layout.LockPath); err != nil {
			t.Fatalf("expected lock file after write #%d: %v", i+1, err)
		}
	}

	held := flock.New(layout.LockPath)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("lock not released: ok=%v err=%v", ok, err)
	}
	_ = held.Unlock()
}

func TestWriteStopsOnCancelledContext(t *testing.T) {
	layout := newLayout(t)
	testsupport.WriteAudioFiles(t, layout.InputDir, "intro.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := emit.Write(ctx, layout, mappingsFor("intro.mp3"), logging.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if _, statErr := os.Stat(layout.HeaderFile); !os.IsNotExist(statErr) {
		t.Fatalf("expected no header after cancellation, stat err=%v", statErr)
	}
}

func TestWriteMissingSource(t *testing.T) {
	layout := newLayout(t)
	if err := os.MkdirAll(layout.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	err := emit.Write(context.Background(), layout, mappingsFor("ghost.mp3"), logging.NewNop())
	if !errors.Is(err, fault.ErrFilesystem) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}
