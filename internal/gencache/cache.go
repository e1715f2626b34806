// Package gencache stores rendered dispatch fragments on disk so unchanged
// overload sets are not re-rendered between runs.
package gencache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"wrapgen/internal/backend"
	"wrapgen/internal/guard"
)

// Bump when Payload changes shape.
const schemaVersion uint16 = 2

// Key is the SHA-256 of everything that shapes a rendered dispatch.
type Key [32]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor hashes the backend, the indentation and the dispatch itself.
func KeyFor(lang string, indent int, d guard.Dispatch) Key {
	h := sha256.New()
	fmt.Fprintf(h, "wrapgen/%d\x00%s\x00%d\x00", schemaVersion, lang, indent)
	h.Write([]byte(guard.Dump(d)))
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Payload is the on-disk form of backend.Fragments.
type Payload struct {
	Schema     uint16
	Backend    string
	Name       string
	GuardCount uint32
	Ambiguity  string
	Guards     []string
	Labels     []string
}

// FromFragments converts rendered fragments into a payload.
func FromFragments(lang string, f backend.Fragments) (*Payload, error) {
	n, err := safecast.Conv[uint32](len(f.Guards))
	if err != nil {
		return nil, fmt.Errorf("too many guards in %s: %w", f.Name, err)
	}
	return &Payload{
		Schema:     schemaVersion,
		Backend:    lang,
		Name:       f.Name,
		GuardCount: n,
		Ambiguity:  f.Ambiguity,
		Guards:     append([]string(nil), f.Guards...),
		Labels:     append([]string(nil), f.Labels...),
	}, nil
}

// Fragments converts p back, rejecting payloads that do not add up.
func (p *Payload) Fragments() (backend.Fragments, error) {
	n, err := safecast.Conv[int](p.GuardCount)
	if err != nil {
		return backend.Fragments{}, err
	}
	if p.Schema != schemaVersion || n != len(p.Guards) || n != len(p.Labels) {
		return backend.Fragments{}, errStale
	}
	return backend.Fragments{
		Name:      p.Name,
		Ambiguity: p.Ambiguity,
		Guards:    p.Guards,
		Labels:    p.Labels,
	}, nil
}

var errStale = errors.New("gencache: stale payload")

// Cache is a directory of msgpack payloads. A nil *Cache is a valid,
// always-missing cache. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open uses dir, or $XDG_CACHE_HOME/wrapgen (~/.cache/wrapgen) when dir is empty.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "wrapgen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, "frags", key.String()+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *Cache) Put(key Key, payload *Payload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads the payload under key. A missing or stale entry is a miss.
func (c *Cache) Get(key Key) (backend.Fragments, bool, error) {
	if c == nil {
		return backend.Fragments{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return backend.Fragments{}, false, nil
		}
		return backend.Fragments{}, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return backend.Fragments{}, false, err
	}
	frags, err := payload.Fragments()
	if errors.Is(err, errStale) {
		return backend.Fragments{}, false, nil
	}
	if err != nil {
		return backend.Fragments{}, false, err
	}
	return frags, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "frags"))
}
