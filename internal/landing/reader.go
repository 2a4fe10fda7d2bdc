package landing

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/pable/go-scout-elt/internal/logging"
	"github.com/pable/go-scout-elt/internal/model"
)

// SnapshotExt is the extension of landing snapshot files (one JSON object per line).
const SnapshotExt = ".jsonl"

// ErrNoSnapshots is returned when an entity has no landing snapshot.
var ErrNoSnapshots = crerr.New("no landing snapshots")

// JSON is the codec shared by ingestion and the reader. Numbers decode as
// json.Number so integers keep their type.
var JSON = sonic.Config{UseNumber: true, SortMapKeys: true}.Froze()

// wrapped lists the entities whose snapshots carry a JSON document per line
// instead of a flat record.
var wrapped = map[string]bool{
	model.EntityMatches:     true,
	model.EntityMatchEvents: true,
}

// IsWrapped reports whether entity snapshots hold JSON-wrapped documents.
func IsWrapped(entity string) bool { return wrapped[entity] }

// Envelope is one line of a wrapped snapshot.
type Envelope struct {
	File string `json:"file"`
	Data string `json:"data"`
}

// Reader loads landing snapshots from a directory.
type Reader struct {
	dir string
	log *logging.Logger
}

func NewReader(dir string, log *logging.Logger) *Reader {
	return &Reader{dir: dir, log: log}
}

// Snapshots returns the snapshot files for entity in name order, which is
// ingestion order.
func (r *Reader) Snapshots(entity string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.dir, entity+"_*"+SnapshotExt))
	if err != nil {
		return nil, crerr.Wrapf(err, "glob %s snapshots", entity)
	}
	sort.Strings(files)
	return files, nil
}

// Scan streams every record of entity across all its snapshots to fn.
// Wrapped documents are decoded and flattened as they are read.
func (r *Reader) Scan(entity string, fn func(Record) error) error {
	files, err := r.Snapshots(entity)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return crerr.Wrapf(ErrNoSnapshots, "entity %s in %s", entity, r.dir)
	}
	for _, path := range files {
		if err := r.scanFile(entity, path, fn); err != nil {
			return crerr.Wrapf(err, "read snapshot %s", filepath.Base(path))
		}
	}
	return nil
}

func (r *Reader) scanFile(entity, path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		if !IsWrapped(entity) {
			var rec Record
			if err := JSON.Unmarshal(raw, &rec); err != nil {
				return crerr.Wrapf(err, "line %d", line)
			}
			if err := fn(rec); err != nil {
				return err
			}
			continue
		}

		var env Envelope
		if err := JSON.Unmarshal(raw, &env); err != nil {
			return crerr.Wrapf(err, "line %d", line)
		}
		var doc any
		if err := JSON.UnmarshalFromString(env.Data, &doc); err != nil {
			r.log.Warn("skipping undecodable wrapped document", "entity", entity, "file", env.File, "err", err)
			continue
		}
		if err := Flatten(doc, fn); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Load reads the whole entity into a Table. A missing snapshot yields
// ErrNoSnapshots and an empty table.
func (r *Reader) Load(entity string) (*Table, error) {
	t := NewTable(entity)
	err := r.Scan(entity, func(rec Record) error {
		t.Append(rec)
		return nil
	})
	return t, err
}

// LoadAll loads every entity. Entities that are missing or unreadable are
// logged and come back empty so independent stages can continue.
func (r *Reader) LoadAll() map[string]*Table {
	out := make(map[string]*Table, len(model.Entities))
	for _, entity := range model.Entities {
		t, err := r.Load(entity)
		switch {
		case crerr.Is(err, ErrNoSnapshots):
			r.log.Warn("no landing data", "entity", entity)
			t = NewTable(entity)
		case err != nil:
			r.log.Error("failed to read landing data", "entity", entity, "err", err)
			t = NewTable(entity)
		default:
			r.log.Info("landing data loaded", "entity", entity, "rows", t.Len(), "columns", len(t.Columns))
		}
		out[entity] = t
	}
	return out
}
