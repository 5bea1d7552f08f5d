package navigation

import (
	"net/url"
	"sync"

	"auction-client/utils"
)

// History is a Navigator for non-browser front ends: it records full-page
// redirects as absolute URLs instead of performing them.
type History struct {
	base *url.URL

	mu      sync.Mutex
	visited []string
}

// NewHistory resolves redirect paths against baseURL.
func NewHistory(baseURL string) (*History, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &History{base: base}, nil
}

func (h *History) Redirect(path string) {
	target := path
	if u, err := utils.JoinURL(h.base, path); err == nil {
		target = u.String()
	}

	h.mu.Lock()
	h.visited = append(h.visited, target)
	h.mu.Unlock()

	utils.Info("redirect", map[string]any{"location": target})
}

// Last returns the most recent redirect target.
func (h *History) Last() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.visited) == 0 {
		return "", false
	}
	return h.visited[len(h.visited)-1], true
}
