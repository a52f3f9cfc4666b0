package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/authstate/session"
)

// FileStore persists session state as JSON at URL, keeping an in-memory copy.
type FileStore struct {
	mu     sync.RWMutex
	URL    string
	fs     afs.Service
	loaded bool
	snap   fileSnapshot
}

type fileSnapshot struct {
	Session      *session.Session `json:"session,omitempty"`
	CodeVerifier string           `json:"codeVerifier,omitempty"`
}

func (f *FileStore) LoadSession(ctx context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return nil, err
	}
	return f.snap.Session, nil
}

func (f *FileStore) SaveSession(ctx context.Context, s *session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return err
	}
	f.snap.Session = s
	return f.save(ctx)
}

func (f *FileStore) DeleteSession(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return err
	}
	f.snap.Session = nil
	return f.save(ctx)
}

func (f *FileStore) PutCodeVerifier(ctx context.Context, verifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return err
	}
	f.snap.CodeVerifier = verifier
	return f.save(ctx)
}

func (f *FileStore) TakeCodeVerifier(ctx context.Context) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return "", false, err
	}
	verifier := f.snap.CodeVerifier
	if verifier == "" {
		return "", false, nil
	}
	f.snap.CodeVerifier = ""
	return verifier, true, f.save(ctx)
}

// ---- persistence ----

func (f *FileStore) load(ctx context.Context) error {
	if f.loaded {
		return nil
	}
	ok, err := f.fs.Exists(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("failed to check session file %v: %w", f.URL, err)
	}
	f.loaded = true
	if !ok {
		return nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.URL)
	if err != nil {
		return fmt.Errorf("failed to read session file %v: %w", f.URL, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode session file %v: %w", f.URL, err)
	}
	f.snap = snap
	return nil
}

func (f *FileStore) save(ctx context.Context) error {
	if f.snap.Session == nil && f.snap.CodeVerifier == "" {
		if ok, _ := f.fs.Exists(ctx, f.URL); ok {
			return f.fs.Delete(ctx, f.URL)
		}
		return nil
	}
	data, err := json.MarshalIndent(f.snap, "", "  ")
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.URL, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write session file %v: %w", f.URL, err)
	}
	return nil
}

// NewFileStore creates a Store persisting session state at URL
func NewFileStore(URL string) *FileStore {
	return &FileStore{URL: URL, fs: afs.New()}
}
