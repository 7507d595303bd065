package leveldata

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for refs no decoder can read through the
// given fetcher.
var ErrUnsupportedFormat = errors.New("unsupported level format")

// DecodeLevel parses a level JSON document.
func DecodeLevel(name string, data []byte) (Level, error) {
	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return Level{}, fmt.Errorf("decode level %s: %w", name, err)
	}
	level.Name = name
	return level, nil
}

// DecodePool parses a pool JSON document.
func DecodePool(data []byte) (Pool, error) {
	var pool Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return Pool{}, fmt.Errorf("decode pool: %w", err)
	}
	if len(pool.Values) == 0 {
		return Pool{}, errors.New("decode pool: no values")
	}
	return pool, nil
}

// DecodeInline parses a base64-encoded level JSON blob as produced by the
// level editor's "play" link.
func DecodeInline(blob string) (Level, error) {
	blob = strings.TrimSpace(blob)
	var data []byte
	var err error
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if data, err = enc.DecodeString(blob); err == nil {
			break
		}
	}
	if err != nil {
		return Level{}, fmt.Errorf("decode inline map: %w", err)
	}
	return DecodeLevel("inline", data)
}

// LoadLevel fetches ref and decodes it according to its extension.
func LoadLevel(ctx context.Context, f Fetcher, ref string) (Level, error) {
	switch ext := refExt(ref); ext {
	case ".tmx":
		fsf, ok := f.(FSFetcher)
		if !ok {
			return Level{}, fmt.Errorf("%s: %w: tmx needs a file system source", ref, ErrUnsupportedFormat)
		}
		if err := ctx.Err(); err != nil {
			return Level{}, err
		}
		return LoadTMX(fsf.FS, ref)
	case ".json", "":
		data, err := f.Fetch(ctx, ref)
		if err != nil {
			return Level{}, err
		}
		return DecodeLevel(refName(ref), data)
	default:
		return Level{}, fmt.Errorf("%s: %w: %s", ref, ErrUnsupportedFormat, ext)
	}
}

// LoadPool fetches and decodes a pool document.
func LoadPool(ctx context.Context, f Fetcher, ref string) (Pool, error) {
	data, err := f.Fetch(ctx, ref)
	if err != nil {
		return Pool{}, err
	}
	pool, err := DecodePool(data)
	if err != nil {
		return Pool{}, fmt.Errorf("%s: %w", ref, err)
	}
	return pool, nil
}

// LoadAllLevels discovers all .json and .tmx files in dir within fsys and
// returns them sorted by name.
func LoadAllLevels(ctx context.Context, fsys fs.FS, dir string) ([]Level, error) {
	var refs []string
	for _, pattern := range []string{"*.json", "*.tmx"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		refs = append(refs, matches...)
	}
	sort.Strings(refs)

	f := FSFetcher{FS: fsys}
	var levels []Level
	for _, ref := range refs {
		// pool documents live next to levels
		if path.Base(ref) == "pool.json" {
			continue
		}
		level, err := LoadLevel(ctx, f, ref)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", ref, err)
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no level files found in %s", dir)
	}
	return levels, nil
}

// ResolveRef resolves a pool entry against the pool's own ref. URLs resolve
// as links; anything else is a slash path inside the same file system.
func ResolveRef(base, ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if b, err := url.Parse(base); err == nil && b.Scheme != "" {
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	if strings.HasPrefix(ref, "/") {
		return strings.TrimPrefix(ref, "/")
	}
	return path.Join(path.Dir(base), ref)
}

func refPath(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return u.Path
	}
	return ref
}

func refExt(ref string) string {
	return strings.ToLower(path.Ext(refPath(ref)))
}

func refName(ref string) string {
	base := path.Base(refPath(ref))
	return strings.TrimSuffix(base, path.Ext(base))
}
