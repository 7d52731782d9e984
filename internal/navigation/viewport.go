package navigation

import "sync"

// Viewport is the host environment's scroll surface.
type Viewport interface {
	// ScrollToTop resets the view to its top.
	ScrollToTop()
	// ScrollIntoView smoothly scrolls the element with the given id to the
	// start edge. Unknown ids are ignored by the host.
	ScrollIntoView(anchor string)
}

// NopViewport ignores every scroll request.
type NopViewport struct{}

func (NopViewport) ScrollToTop()          {}
func (NopViewport) ScrollIntoView(string) {}

// ScrollRequest is one recorded scroll command.
type ScrollRequest struct {
	Top    bool   `json:"top,omitempty"`
	Anchor string `json:"anchor,omitempty"`
}

// ScrollRecorder queues scroll requests for a host that applies them later,
// such as a rendered page or a live connection.
type ScrollRecorder struct {
	mu       sync.Mutex
	requests []ScrollRequest
}

func (r *ScrollRecorder) ScrollToTop() {
	r.push(ScrollRequest{Top: true})
}

func (r *ScrollRecorder) ScrollIntoView(anchor string) {
	r.push(ScrollRequest{Anchor: anchor})
}

// Drain returns and clears the queued requests.
func (r *ScrollRecorder) Drain() []ScrollRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.requests
	r.requests = nil
	return out
}

func (r *ScrollRecorder) push(req ScrollRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
}
