package navigation

import (
	"context"
	"sync"
)

// View is the lifecycle owner of a State: while active it applies every
// route published on the bus.
type View struct {
	state    *State
	bus      *RouteBus
	onChange func(Snapshot)

	mu     sync.Mutex
	active bool
}

// NewView binds state to bus. onChange, if set, runs on the view goroutine
// after each applied navigation.
func NewView(state *State, bus *RouteBus, onChange func(Snapshot)) *View {
	return &View{
		state:    state,
		bus:      bus,
		onChange: onChange,
	}
}

// State returns the bound navigation state.
func (v *View) State() *State { return v.state }

// Activate subscribes to the bus and starts applying routes. The returned
// release func unsubscribes, waits for the event loop to exit and disposes
// the state; after it returns no event mutates the state any more.
// release is idempotent. Typical use:
//
//	defer view.Activate(ctx)()
//
// Activating an already active view returns a no-op release.
func (v *View) Activate(ctx context.Context) (release func()) {
	v.mu.Lock()
	if v.active {
		v.mu.Unlock()
		return func() {}
	}
	v.active = true
	v.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	sub := v.bus.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case params, ok := <-sub.C():
				if !ok {
					return
				}
				// Drop the event if teardown raced with delivery.
				if ctx.Err() != nil {
					return
				}
				v.state.Navigate(params)
				if v.onChange != nil {
					v.onChange(v.state.Snapshot())
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			sub.Unsubscribe()
			<-done
			v.state.Dispose()
		})
	}
}
