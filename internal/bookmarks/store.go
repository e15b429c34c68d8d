package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrIndexOutOfRange is returned by Remove for an index outside [0, len).
var ErrIndexOutOfRange = errors.New("bookmark index out of range")

// maxTextLen bounds the stored tweet text, matching the tweet length cap.
const maxTextLen = 280

// Bookmark is a locally persisted copy of a tweet's key fields,
// independent of any remote bookmark state.
type Bookmark struct {
	TweetID   string    `json:"tweet_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"saved_at"`
}

// Store persists bookmarks as a single JSON file, fully rewritten on every
// mutation. Concurrent invocations of the CLI race on the file (last writer
// wins); the tool is single-user and this is a documented limitation.
type Store struct {
	path  string
	nowFn func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, nowFn: time.Now}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted list. A missing file is an empty store,
// not an error.
func (s *Store) Load() ([]Bookmark, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Bookmark{}, nil
		}
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}

	var list []Bookmark
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse bookmarks file: %w", err)
	}
	if list == nil {
		list = []Bookmark{}
	}
	return list, nil
}

// Save rewrites the whole file. The write goes to a temp file in the same
// directory followed by a rename, so a crash mid-save cannot truncate the
// previous on-disk state. The file ends up owner-read/write only.
func (s *Store) Save(list []Bookmark) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create bookmarks directory: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookmarks-*.json")
	if err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// Add appends the bookmark unless one with the same tweet id already exists.
// Duplicates are a silent no-op; the returned bool reports whether the store
// grew. Text is truncated to the tweet length cap and SavedAt is stamped here.
func (s *Store) Add(b Bookmark) (bool, error) {
	list, err := s.Load()
	if err != nil {
		return false, err
	}

	for _, existing := range list {
		if existing.TweetID == b.TweetID {
			return false, nil
		}
	}

	if runes := []rune(b.Text); len(runes) > maxTextLen {
		b.Text = string(runes[:maxTextLen])
	}
	if b.SavedAt.IsZero() {
		b.SavedAt = s.nowFn()
	}

	list = append(list, b)
	if err := s.Save(list); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the entry at the 0-based index and returns it for
// confirmation display. Later entries shift down by one.
func (s *Store) Remove(index int) (Bookmark, error) {
	list, err := s.Load()
	if err != nil {
		return Bookmark{}, err
	}
	if index < 0 || index >= len(list) {
		return Bookmark{}, fmt.Errorf("remove bookmark %d of %d: %w", index, len(list), ErrIndexOutOfRange)
	}

	removed := list[index]
	list = append(list[:index], list[index+1:]...)
	if err := s.Save(list); err != nil {
		return Bookmark{}, err
	}
	return removed, nil
}
