package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
)

// RenderStore holds export document markup for the short window between
// export start and the headless renderer fetching it back over HTTP. Tokens
// are single-use; the pipeline deletes them when the export attempt ends.
type RenderStore struct {
	mu    sync.Mutex
	pages map[string]string
}

// NewRenderStore creates an empty render store.
func NewRenderStore() *RenderStore {
	return &RenderStore{pages: make(map[string]string)}
}

// Put stores markup and returns its access token.
func (s *RenderStore) Put(html string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.pages[token] = html
	s.mu.Unlock()
	return token
}

// Get returns the markup for a token.
func (s *RenderStore) Get(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	html, ok := s.pages[token]
	return html, ok
}

// Delete drops a token.
func (s *RenderStore) Delete(token string) {
	s.mu.Lock()
	delete(s.pages, token)
	s.mu.Unlock()
}
