package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// entry is one cached image header, addressed by path, size and mtime.
type entry struct {
	Path    string           `json:"path"`
	Size    int64            `json:"size"`
	ModTime time.Time        `json:"mod_time"`
	Info    domain.ImageInfo `json:"info"`
}

// ProbeCache stores image header results as JSON blobs so listing the
// history does not reopen every image.
type ProbeCache struct {
	dir        string
	inner      ports.ImageProber
	maxEntries int
	readOnly   bool
}

// NewProbeCache wraps inner with a cache rooted at dir.
func NewProbeCache(dir string, inner ports.ImageProber) *ProbeCache {
	return &ProbeCache{
		dir:        dir,
		inner:      inner,
		maxEntries: domain.ProbeCacheMaxEntries,
	}
}

// Probe implements ports.ImageProber. Cache failures fall through to the
// wrapped prober.
func (c *ProbeCache) Probe(path string) (domain.ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return domain.ImageInfo{}, err
	}
	key := keyFor(path, stat)

	if cached, ok := c.get(key); ok && cached.Size == stat.Size() && cached.ModTime.Equal(stat.ModTime()) {
		return cached.Info, nil
	}

	info, err := c.inner.Probe(path)
	if err != nil {
		return domain.ImageInfo{}, err
	}
	if c.readOnly {
		return info, nil
	}
	_ = c.set(key, entry{Path: path, Size: stat.Size(), ModTime: stat.ModTime(), Info: info})
	return info, nil
}

// ReadOnly returns a view of the cache that serves hits but never writes.
func (c *ProbeCache) ReadOnly() *ProbeCache {
	return &ProbeCache{dir: c.dir, inner: c.inner, maxEntries: c.maxEntries, readOnly: true}
}

// Dir exposes the cache directory path.
func (c *ProbeCache) Dir() string {
	return c.dir
}

// Clear removes all cached entries.
func (c *ProbeCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *ProbeCache) get(key string) (entry, bool) {
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return entry{}, false
	}
	return e, true
}

func (c *ProbeCache) set(key string, e entry) error {
	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(key), data, domain.FilePermissions); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

func (c *ProbeCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func keyFor(path string, stat os.FileInfo) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d", path, stat.Size(), stat.ModTime().UnixNano())))
	return hex.EncodeToString(sum[:16])
}

// evictIfNeeded drops the oldest files once the directory exceeds maxEntries.
func (c *ProbeCache) evictIfNeeded() error {
	if c.maxEntries <= 0 {
		return nil
	}
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		_ = os.Remove(filepath.Join(c.dir, infos[0].name))
		infos = infos[1:]
	}
	return nil
}

var _ ports.ImageProber = (*ProbeCache)(nil)
