// Package ingest converts raw CSV and JSON exports into landing snapshots.
//
// CSV files become one flat JSON record per line with column types inferred
// from the data. JSON files are kept as a single document wrapped in an
// {"file","data"} envelope, decoded later by the landing reader.
package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/zeebo/xxh3"

	"github.com/pable/go-scout-elt/internal/landing"
	"github.com/pable/go-scout-elt/internal/logging"
)

var (
	ErrUnsupportedFormat = crerr.New("unsupported raw file format")
	ErrEmptyFile         = crerr.New("raw file is empty")
)

// Ingester copies raw files from RawDir into LandingDir.
type Ingester struct {
	RawDir     string
	LandingDir string
	Log        *logging.Logger
	Now        func() time.Time
}

// Result summarizes one ingestion run.
type Result struct {
	Written   []string // landing files written
	Unchanged []string // raw files whose content was already landed
	Skipped   []string // raw files that could not be ingested
}

// Run ingests every regular file in RawDir. Files that cannot be ingested
// are logged and skipped; only landing directory failures are returned.
func (in *Ingester) Run() (Result, error) {
	var res Result
	if err := os.MkdirAll(in.LandingDir, 0755); err != nil {
		return res, crerr.Wrap(err, "create landing dir")
	}
	entries, err := os.ReadDir(in.RawDir)
	if err != nil {
		return res, crerr.Wrapf(err, "read raw dir %s", in.RawDir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(in.RawDir, e.Name())
		out, unchanged, err := in.File(path)
		switch {
		case err != nil:
			in.Log.Warn("skipping raw file", "file", e.Name(), "err", err)
			res.Skipped = append(res.Skipped, e.Name())
		case unchanged:
			in.Log.Info("raw file unchanged since last ingestion", "file", e.Name())
			res.Unchanged = append(res.Unchanged, e.Name())
		default:
			in.Log.Info("raw file landed", "file", e.Name(), "snapshot", filepath.Base(out))
			res.Written = append(res.Written, out)
		}
	}
	return res, nil
}

// File lands a single raw file. The entity name is the file stem. When the
// newest snapshot of that entity has the same content hash, nothing is
// written and unchanged is true.
func (in *Ingester) File(path string) (out string, unchanged bool, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".json" {
		return "", false, crerr.Wrapf(ErrUnsupportedFormat, "%s", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, crerr.Wrap(err, "read raw file")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", false, ErrEmptyFile
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	hash := fmt.Sprintf("%016x", xxh3.Hash(data))

	snaps, err := landing.NewReader(in.LandingDir, in.Log).Snapshots(stem)
	if err != nil {
		return "", false, err
	}
	if n := len(snaps); n > 0 && strings.HasSuffix(snaps[n-1], "_"+hash+landing.SnapshotExt) {
		return snaps[n-1], true, nil
	}

	var lines [][]byte
	switch ext {
	case ".csv":
		lines, err = csvLines(data)
	case ".json":
		lines, err = jsonLines(filepath.Base(path), data)
	}
	if err != nil {
		return "", false, err
	}

	now := time.Now
	if in.Now != nil {
		now = in.Now
	}
	ts := strings.ReplaceAll(now().UTC().Format("20060102150405.000000"), ".", "")
	out = filepath.Join(in.LandingDir, fmt.Sprintf("%s_%s_%s%s", stem, ts, hash, landing.SnapshotExt))
	if err := writeLines(out, lines); err != nil {
		return "", false, err
	}
	return out, false, nil
}

func jsonLines(name string, data []byte) ([][]byte, error) {
	var doc any
	if err := landing.JSON.Unmarshal(data, &doc); err != nil {
		return nil, crerr.Wrap(err, "invalid JSON")
	}
	compact, err := landing.JSON.MarshalToString([]any{doc})
	if err != nil {
		return nil, crerr.Wrap(err, "encode JSON document")
	}
	line, err := landing.JSON.Marshal(landing.Envelope{File: name, Data: compact})
	if err != nil {
		return nil, crerr.Wrap(err, "encode envelope")
	}
	return [][]byte{line}, nil
}

func writeLines(path string, lines [][]byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return crerr.Wrap(err, "create snapshot")
	}
	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.Write(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return crerr.Wrap(err, "write snapshot")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return crerr.Wrap(err, "close snapshot")
	}
	return os.Rename(tmp, path)
}
