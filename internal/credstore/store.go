package credstore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileName is the file inside the state directory holding saved sessions.
const FileName = "sessions.json"

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Store keeps upstream session cookies between CLI invocations, keyed by API
// base URL.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// New creates a Store rooted at dir on fs.
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, path: filepath.Join(dir, FileName)}
}

// NewOS creates a Store on the real filesystem.
func NewOS(dir string) *Store {
	return New(afero.NewOsFs(), dir)
}

func (s *Store) Path() string { return s.path }

// Load returns the cookies saved for baseURL. Nothing saved is not an error.
func (s *Store) Load(baseURL string) ([]*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	saved := all[baseURL]
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

// Save replaces the cookies stored for baseURL. An empty list removes the entry.
func (s *Store) Save(baseURL string, cookies []*http.Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		delete(all, baseURL)
	} else {
		saved := make([]savedCookie, 0, len(cookies))
		for _, c := range cookies {
			saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
		}
		all[baseURL] = saved
	}
	return s.writeAll(all)
}

// Delete forgets baseURL.
func (s *Store) Delete(baseURL string) error {
	return s.Save(baseURL, nil)
}

func (s *Store) readAll() (map[string][]savedCookie, error) {
	all := make(map[string][]savedCookie)
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return all, nil
		}
		return nil, fmt.Errorf("credstore: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("credstore: decode %s: %w", s.path, err)
	}
	return all, nil
}

func (s *Store) writeAll(all map[string][]savedCookie) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credstore: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore: encode: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write %s: %w", s.path, err)
	}
	return nil
}
