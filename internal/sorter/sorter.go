package sorter

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"dfsorter/internal/config"
	"dfsorter/internal/discover"
	"dfsorter/internal/emit"
	"dfsorter/internal/identifier"
	"dfsorter/internal/logging"
	"dfsorter/internal/ranking"
	"dfsorter/internal/splitter"
)

// Result describes a planned or completed run.
type Result struct {
	RunID      string
	CustomSort bool
	SplitMode  splitter.Mode
	Entries    []ranking.Entry
	Mappings   []emit.Mapping
}

// Sorter runs the pipeline for one configuration.
type Sorter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs a Sorter. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Sorter {
	return &Sorter{cfg: cfg, logger: logging.NewComponentLogger(logger, "sorter")}
}

// Plan discovers, validates, and orders the input files without touching
// the output directory or header file.
func (s *Sorter) Plan(ctx context.Context) (*Result, error) {
	res, logger := s.start()
	return res, s.plan(ctx, res, logger)
}

// Run executes Plan and writes the renamed files and header.
func (s *Sorter) Run(ctx context.Context) (*Result, error) {
	res, logger := s.start()
	if err := s.plan(ctx, res, logger); err != nil {
		return res, err
	}

	layout := emit.Layout{
		InputDir:   s.cfg.Paths.InputDir,
		OutputDir:  s.cfg.Paths.OutputDir,
		HeaderFile: s.cfg.Paths.HeaderFile,
		LockPath:   s.cfg.LockPath(),
		MacroName:  s.cfg.Header.MacroName,
		Verify:     s.cfg.Copy.Verify,
	}
	if err := emit.Write(ctx, layout, res.Mappings, logger); err != nil {
		logger.Error("write failed", logging.Error(err))
		return res, err
	}
	return res, nil
}

func (s *Sorter) start() (*Result, *slog.Logger) {
	res := &Result{RunID: uuid.NewString(), CustomSort: s.cfg.Sort.Enabled}
	return res, s.logger.With(logging.String(logging.FieldRunID, res.RunID))
}

func (s *Sorter) plan(ctx context.Context, res *Result, logger *slog.Logger) error {
	macro := s.cfg.Header.MacroName
	if err := identifier.ValidateMacro(macro); err != nil {
		logger.Error("macro name rejected", logging.String("macro", macro))
		return err
	}

	if res.CustomSort {
		mode, err := splitter.ParseMode(s.cfg.Sort.SplitMode)
		if err != nil {
			logger.Error("split mode rejected", logging.String("split_mode", s.cfg.Sort.SplitMode))
			return err
		}
		res.SplitMode = mode
	}

	files, err := discover.Files(s.cfg.Paths.InputDir, discover.Options{
		Extensions: s.cfg.Discover.Extensions,
		IgnorePath: s.cfg.IgnorePath(),
	})
	if err != nil {
		return err
	}
	logger.Info("input discovered", logging.String("dir", s.cfg.Paths.InputDir), logging.Int("files", len(files)))
	if len(files) == 0 {
		logger.Warn("no audio files found; the header will contain no tracks")
	}

	if err := identifier.ValidateNames(discover.Bases(files), macro); err != nil {
		var invalid *identifier.InvalidNamesError
		if errors.As(err, &invalid) {
			for _, p := range invalid.Problems {
				logger.Debug("file name rejected", logging.String("name", p.Name), logging.String("reason", p.Reason))
			}
			logger.Error("file name validation failed", logging.Int("rejected", len(invalid.Problems)))
		}
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	res.Entries, err = s.order(files, res.SplitMode)
	if err != nil {
		return err
	}
	res.Mappings = emit.Assign(res.Entries)
	logger.Debug("order computed", logging.Bool("custom_sort", res.CustomSort), logging.Int("tracks", len(res.Mappings)))
	return nil
}

func (s *Sorter) order(files []discover.AudioFile, mode splitter.Mode) ([]ranking.Entry, error) {
	if !s.cfg.Sort.Enabled {
		return ranking.Identity(files), nil
	}
	tokens, err := splitter.SplitAll(discover.Bases(files), mode)
	if err != nil {
		return nil, err
	}
	entries, err := ranking.Rank(files, tokens, ranking.NewSortOrder(s.cfg.Sort.PrimaryOrder, s.cfg.Sort.SecondaryOrder))
	if err != nil {
		return nil, err
	}
	ranking.Sort(entries)
	return entries, nil
}
