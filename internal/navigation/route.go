package navigation

import (
	"maps"
	"sync"
)

// TopicParam is the route parameter carrying the topic slug.
const TopicParam = "topic"

// RouteParams are the named parameters of the active route.
type RouteParams map[string]string

// TopicRoute builds route params selecting slug.
func TopicRoute(slug string) RouteParams {
	return RouteParams{TopicParam: slug}
}

// Topic returns the topic slug, or "" when the parameter is absent.
func (p RouteParams) Topic() string {
	return p[TopicParam]
}

// RouteBus fans route changes out to subscribers. It remembers the latest
// params so that a new subscriber starts from the current route.
type RouteBus struct {
	mu      sync.Mutex
	current RouteParams
	hasLast bool
	subs    map[*Subscription]struct{}
	closed  bool
}

// NewRouteBus creates an empty bus.
func NewRouteBus() *RouteBus {
	return &RouteBus{subs: make(map[*Subscription]struct{})}
}

// Publish records params as the current route and delivers them to every
// subscriber. It never blocks: a lagging subscriber only sees the latest route.
func (b *RouteBus) Publish(params RouteParams) {
	params = maps.Clone(params)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.current = params
	b.hasLast = true
	for sub := range b.subs {
		sub.deliver(params)
	}
}

// Current returns the latest published params.
func (b *RouteBus) Current() (RouteParams, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return maps.Clone(b.current), b.hasLast
}

// Subscribe registers a new subscriber. The current route, if any, is
// delivered first. A subscription on a closed bus is already closed.
func (b *RouteBus) Subscribe() *Subscription {
	sub := &Subscription{bus: b, ch: make(chan RouteParams, 1)}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		sub.done = true
		return sub
	}
	b.subs[sub] = struct{}{}
	if b.hasLast {
		sub.deliver(b.current)
	}
	return sub
}

// Subscribers returns the number of live subscriptions.
func (b *RouteBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// Close ends every subscription. Later publications are dropped.
func (b *RouteBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.closeLocked()
	}
}

// Subscription receives route changes until it is unsubscribed.
type Subscription struct {
	bus  *RouteBus
	ch   chan RouteParams
	done bool // guarded by bus.mu
}

// C returns the delivery channel. It is closed on Unsubscribe or bus Close.
func (s *Subscription) C() <-chan RouteParams {
	return s.ch
}

// Unsubscribe stops delivery and closes C. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	s.closeLocked()
}

func (s *Subscription) closeLocked() {
	if s.done {
		return
	}
	s.done = true
	delete(s.bus.subs, s)
	close(s.ch)
}

// deliver replaces any undelivered params with p. Called with bus.mu held.
func (s *Subscription) deliver(p RouteParams) {
	for {
		select {
		case s.ch <- p:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
