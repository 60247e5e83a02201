package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cefmt/internal/diag"
	"cefmt/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 sum.
type Digest [32]byte

// DiskCache хранит диагностики файлов на диске, по хешу содержимого и
// настроек проверки. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the outcome of checking one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path     string
	FileHash Digest
	Calls    int

	Diagnostics []DiskDiagnostic
}

// DiskDiagnostic is a diagnostic with file-relative spans.
type DiskDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []DiskNote
	Fixes    []DiskFix
}

// DiskNote is a cached diag.Note.
type DiskNote struct {
	Start, End uint32
	Msg        string
}

// DiskFix is a cached diag.Fix.
type DiskFix struct {
	Title string
	Edits []DiskEdit
}

// DiskEdit is a cached diag.FixEdit.
type DiskEdit struct {
	Start, End uint32
	NewText    string
}

// DefaultCacheDir returns $XDG_CACHE_HOME/app or ~/.cache/app.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache initializes a disk cache in dir, or in DefaultCacheDir(app)
// when dir is empty.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(app); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// один файл на ключ, в подкаталоге files
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// diskKey mixes the file hash with every option that changes the result.
func diskKey(fileHash [32]byte, opts Options) Digest {
	h := sha256.New()
	h.Write(fileHash[:])
	h.Write([]byte{byte(opts.Profile), boolByte(opts.ReportNonLiteral)})
	// усечённый bag нельзя восстановить при другом лимите
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(max(opts.MaxDiagnostics, 0))))
	h.Write([]byte(strings.Join(opts.CompileFuncs, ",")))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(opts.PrintFuncs, ",")))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// newDiskPayload converts a checked file's bag for caching.
func newDiskPayload(path string, hash [32]byte, calls int, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		FileHash:    hash,
		Calls:       calls,
		Diagnostics: make([]DiskDiagnostic, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		dd := DiskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			dd.Notes = append(dd.Notes, DiskNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, fix := range d.Fixes {
			df := DiskFix{Title: fix.Title}
			for _, e := range fix.Edits {
				df.Edits = append(df.Edits, DiskEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
			}
			dd.Fixes = append(dd.Fixes, df)
		}
		payload.Diagnostics = append(payload.Diagnostics, dd)
	}
	return payload
}

// restore adds the cached diagnostics to bag, attached to file id.
func (p *DiskPayload) restore(id source.FileID, bag *diag.Bag) {
	span := func(start, end uint32) source.Span {
		return source.Span{File: id, Start: start, End: end}
	}
	for _, dd := range p.Diagnostics {
		d := diag.New(diag.Severity(dd.Severity), diag.Code(dd.Code), span(dd.Start, dd.End), dd.Message)
		for _, n := range dd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, df := range dd.Fixes {
			edits := make([]diag.FixEdit, 0, len(df.Edits))
			for _, e := range df.Edits {
				edits = append(edits, diag.FixEdit{Span: span(e.Start, e.End), NewText: e.NewText})
			}
			d = d.WithFix(df.Title, edits...)
		}
		bag.Add(d)
	}
}
