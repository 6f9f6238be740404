package extcal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// cacheMeta holds HTTP cache metadata for the feed URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// feedCache is a disk-backed cache of the last good feed body, keyed by
// a hash of the feed URL. It lets a refresh survive a network failure
// by falling back to the previous body.
type feedCache struct {
	dir string
}

func newFeedCache(dir string) *feedCache {
	if dir == "" {
		dir = "./var/feed-cache"
	}
	return &feedCache{dir: dir}
}

func (c *feedCache) pathFor(url string) (string, error) {
	if url == "" {
		return "", errors.New("empty url")
	}
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])), nil
}

func (c *feedCache) load(url string) (cacheMeta, []byte) {
	dir, err := c.pathFor(url)
	if err != nil {
		return cacheMeta{}, nil
	}

	var meta cacheMeta
	if data, err := os.ReadFile(filepath.Join(dir, "meta.json")); err == nil {
		_ = json.Unmarshal(data, &meta)
	}
	body, _ := os.ReadFile(filepath.Join(dir, "body.ics"))
	return meta, body
}

func (c *feedCache) save(url string, meta cacheMeta, body []byte) error {
	dir, err := c.pathFor(url)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	// Write body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(dir, "body.ics"), body, 0o600); err != nil {
		return err
	}

	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o600)
}
