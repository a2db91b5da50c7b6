package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/samdwyer/tilenav/internal/config"
	"github.com/samdwyer/tilenav/internal/level"
)

// ResolveLevel picks the level to show: a file on disk first, then a
// generated level, then an embedded level by ID.
func ResolveLevel(ctx context.Context, cfg config.Config, reg *level.Registry) (*level.Def, error) {
	switch {
	case cfg.LevelFile != "":
		return level.LoadFile(cfg.LevelFile)
	case cfg.Generate.Enabled:
		seed := cfg.Generate.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		slog.Info("generating level", "seed", seed, "width", cfg.Generate.Width, "height", cfg.Generate.Height)
		return level.Generate(ctx, cfg.Generate.Width, cfg.Generate.Height, seed), nil
	default:
		return reg.Lookup(cfg.Level)
	}
}
