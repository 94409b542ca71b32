// Package store locates, loads, and summarises buildlog files on disk.
// Parsed documents are cached keyed by path and modification time, so
// an unchanged file is never parsed twice.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"buildlog/pkg/fileinfo"
	"buildlog/pkg/schema"
	"buildlog/pkg/session"
)

type Store struct {
	cache *cache.Cache
}

func New() *Store {
	return &Store{
		cache: cache.New(30*time.Minute, 10*time.Minute),
	}
}

// Load reads and parses one buildlog file. Repeated loads of an
// unchanged file return the cached document; any edit to the file
// changes the mtime and misses the cache.
func (s *Store) Load(path string) (schema.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	key := fmt.Sprintf("%s|%d", path, info.ModTime().UnixNano())
	if cached, found := s.cache.Get(key); found {
		return cached.(schema.Document), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := schema.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	s.cache.Set(key, doc, cache.DefaultExpiration)
	return doc, nil
}

// ListOptions narrows a directory listing. Zero values mean no filter.
type ListOptions struct {
	Editor string
	After  time.Time
	Before time.Time
	Limit  int
}

// Summary is the listing row for one buildlog file.
type Summary struct {
	ID         string               `json:"id"`
	Version    string               `json:"version"`
	Title      string               `json:"title"`
	Path       string               `json:"path"`
	Editor     string               `json:"editor"`
	CreatedAt  time.Time            `json:"createdAt"`
	EntryCount int                  `json:"entryCount"`
	Duration   int                  `json:"durationSeconds"`
	Status     string               `json:"status,omitempty"`
	Size       session.SizeCategory `json:"size"`
}

// ListResult carries the summaries alongside the per-file failures.
// A broken file degrades to a warning instead of failing the listing.
type ListResult struct {
	Summaries []Summary
	Warnings  []error
}

// List walks root for buildlog files, summarises each, and returns the
// result sorted newest first.
func (s *Store) List(root string, opts ListOptions) (*ListResult, error) {
	result := &ListResult{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileinfo.IsBuildlogFile(path) {
			return nil
		}

		doc, err := s.Load(path)
		if err != nil {
			result.Warnings = append(result.Warnings, err)
			return nil
		}

		summary := Summarize(doc, path)
		if opts.Editor != "" && summary.Editor != opts.Editor {
			return nil
		}
		if !opts.After.IsZero() && summary.CreatedAt.Before(opts.After) {
			return nil
		}
		if !opts.Before.IsZero() && summary.CreatedAt.After(opts.Before) {
			return nil
		}
		result.Summaries = append(result.Summaries, summary)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(result.Summaries, func(i, j int) bool {
		return result.Summaries[i].CreatedAt.After(result.Summaries[j].CreatedAt)
	})
	if opts.Limit > 0 && len(result.Summaries) > opts.Limit {
		result.Summaries = result.Summaries[:opts.Limit]
	}
	return result, nil
}

// Summarize reduces a parsed document of either version to one listing
// row. CreatedAt stays zero when the timestamp does not parse; the
// document already passed validation, so that only happens for
// hand-built values.
func Summarize(doc schema.Document, path string) Summary {
	switch d := doc.(type) {
	case *schema.DocumentV1:
		created, _ := time.Parse(time.RFC3339, d.Metadata.CreatedAt)
		return Summary{
			ID:         d.Metadata.ID,
			Version:    d.Version,
			Title:      d.Metadata.Title,
			Path:       path,
			Editor:     string(d.Metadata.Editor),
			CreatedAt:  created,
			EntryCount: len(d.Events),
			Duration:   d.Metadata.DurationSeconds,
			Size:       session.EstimateSize(d),
		}
	case *schema.DocumentV2:
		created, _ := time.Parse(time.RFC3339, d.Metadata.CreatedAt)
		return Summary{
			ID:         d.Metadata.ID,
			Version:    d.Version,
			Title:      d.Metadata.Title,
			Path:       path,
			Editor:     string(d.Metadata.Editor),
			CreatedAt:  created,
			EntryCount: len(d.Steps),
			Duration:   d.Metadata.DurationSeconds,
			Status:     string(d.Outcome.Status),
			Size:       session.EstimateSize(d),
		}
	default:
		return Summary{Path: path}
	}
}

// SuggestFilename derives the canonical on-disk name for a document:
// the slugged title plus the buildlog extension.
func SuggestFilename(doc schema.Document) string {
	var title string
	switch d := doc.(type) {
	case *schema.DocumentV1:
		title = d.Metadata.Title
	case *schema.DocumentV2:
		title = d.Metadata.Title
	}
	slug := fileinfo.Slugify(title)
	if slug == "" {
		slug = "session"
	}
	return slug + fileinfo.Extension
}
