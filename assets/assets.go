// Package assets embeds the bundled levels and the default pool.
package assets

import (
	"context"
	"embed"
	"io/fs"

	"github.com/automoto/ledgeline/level"
	"github.com/automoto/ledgeline/shared/leveldata"
)

//go:embed all:levels
var assetFS embed.FS

const (
	LevelDir = "levels"
	PoolRef  = "levels/pool.json"
)

// FS exposes the embedded tree. Refs are slash paths such as "levels/gap.json".
func FS() fs.FS { return assetFS }

// Fetcher reads refs from the embedded tree.
func Fetcher() leveldata.Fetcher {
	return leveldata.FSFetcher{FS: assetFS}
}

// DefaultSource samples count maps from the bundled pool. Zero uses the
// configured sequence length.
func DefaultSource(count int) level.Source {
	return level.PoolSource(PoolRef, count)
}

// LoadLevels decodes every bundled level, sorted by file name.
func LoadLevels(ctx context.Context) ([]leveldata.Level, error) {
	return leveldata.LoadAllLevels(ctx, assetFS, LevelDir)
}
