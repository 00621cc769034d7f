package emit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"dfsorter/internal/discover"
	"dfsorter/internal/fault"
	"dfsorter/internal/fileutil"
	"dfsorter/internal/logging"
	"dfsorter/internal/ranking"
)

// Mapping binds a 1-based track number to a source file.
type Mapping struct {
	Index int
	File  discover.AudioFile
}

// TargetName is the renamed file: four zero-padded digits plus the original
// extension.
func (m Mapping) TargetName() string {
	return fmt.Sprintf("%04d%s", m.Index, m.File.Ext)
}

// Assign numbers entries 1..N in slice order. Entries must already be sorted.
func Assign(entries []ranking.Entry) []Mapping {
	mappings := make([]Mapping, len(entries))
	for i, e := range entries {
		mappings[i] = Mapping{Index: i + 1, File: e.File}
	}
	return mappings
}

// RenderHeader writes the include-guarded header for mappings.
func RenderHeader(w io.Writer, macro string, mappings []Mapping) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#ifndef %s\n#define %s\n\n", macro, macro)
	for _, m := range mappings {
		fmt.Fprintf(&buf, "#define %s %d\n", m.File.Base, m.Index)
	}
	buf.WriteString("\n#endif\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// Layout names every path Write touches.
type Layout struct {
	InputDir   string
	OutputDir  string
	HeaderFile string
	LockPath   string
	MacroName  string
	Verify     bool
}

// Write materializes mappings on disk. Callers must validate names before
// calling it; nothing is checked here.
func Write(ctx context.Context, layout Layout, mappings []Mapping, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "emit")

	if err := os.MkdirAll(filepath.Dir(layout.LockPath), 0o755); err != nil {
		return fault.Wrap(fault.ErrFilesystem, "emit", "create lock directory", "", err)
	}
	lock := flock.New(layout.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fault.Wrap(fault.ErrFilesystem, "emit", "acquire lock", layout.LockPath, err)
	}
	if !ok {
		return fault.Wrap(fault.ErrLocked, "emit", "acquire lock", fmt.Sprintf("another run holds %s", layout.LockPath), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	if err := fileutil.ResetDir(layout.OutputDir); err != nil {
		return fault.Wrap(fault.ErrFilesystem, "emit", "recreate output directory", "", err)
	}
	logger.Debug("output directory recreated", logging.String("dir", layout.OutputDir))

	var total int64
	for _, m := range mappings {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(layout.InputDir, m.File.Name)
		dst := filepath.Join(layout.OutputDir, m.TargetName())
		n, err := fileutil.CopyFile(src, dst, layout.Verify)
		if err != nil {
			return fault.Wrap(fault.ErrFilesystem, "emit", "copy", m.File.Name, err)
		}
		total += n
		logger.Debug("copied file",
			logging.String("source", m.File.Name),
			logging.String("target", m.TargetName()),
			logging.Int64("bytes", n),
		)
	}

	var header bytes.Buffer
	if err := RenderHeader(&header, layout.MacroName, mappings); err != nil {
		return fault.Wrap(fault.ErrFilesystem, "emit", "render header", "", err)
	}
	if err := fileutil.WriteFileAtomic(layout.HeaderFile, header.Bytes(), 0o644); err != nil {
		return fault.Wrap(fault.ErrFilesystem, "emit", "write header", layout.HeaderFile, err)
	}

	logger.Info("output written",
		logging.Int("files", len(mappings)),
		logging.Int64("bytes", total),
		logging.String("header", layout.HeaderFile),
	)
	return nil
}
