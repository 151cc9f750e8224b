// Package tail fans decoded touch events out to live debug subscribers and
// serves them over the /debug/ admin routes.
package tail

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"tailscale.com/tsweb"

	"github.com/banshee-data/touchbridge/internal/httputil"
)

// subscriberBuffer bounds how far a slow subscriber may lag before events
// are dropped for it.
const subscriberBuffer = 64

// Event is one pointer action taken by the bridge.
type Event struct {
	Time time.Time `json:"time"`
	Kind string    `json:"kind"` // move, press or release
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Held bool      `json:"held"`
}

// Publisher accepts events from the run loop. Publish must not block.
type Publisher interface {
	Publish(Event)
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard is a Publisher that drops everything, used when no debug listener
// is configured.
var Discard Publisher = discard{}

// Broadcaster is a Publisher that copies each event to every subscriber.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
	closing     bool
	last        Event
	seen        bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan Event),
	}
}

// Subscribe creates a new channel for receiving events. The ID is used to
// identify the channel when unsubscribing. After Close the returned channel
// is already closed so callers don't block.
func (b *Broadcaster) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closing {
		close(ch)
		return id, ch
	}
	b.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes and closes a subscriber. Unknown IDs are ignored.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish implements Publisher.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closing {
		return
	}
	b.last, b.seen = ev, true
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// if the channel is full skip so as not to block the run loop
		}
	}
}

// Last returns the most recent event, if any.
func (b *Broadcaster) Last() (Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.seen
}

// Close closes all subscriber channels. Later publishes are dropped.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closing {
		return nil
	}
	b.closing = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
	return nil
}

// AttachAdminRoutes attaches debugging endpoints to the given HTTP mux served
// at /debug/. These routes are accessible only over localhost/via Tailscale.
func (b *Broadcaster) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.Handle("touch-state", "last pointer event as JSON", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ev, ok := b.Last(); ok {
			httputil.WriteJSON(w, http.StatusOK, ev)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, nil)
	}))

	// Server-Sent Events stream of pointer events as they happen.
	debug.HandleSilent("tail", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.MethodNotAllowed(w)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			httputil.WriteJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no") // Disable buffering for nginx

		id, c := b.Subscribe()
		defer b.Unsubscribe(id)

		// Send initial ping to establish connection
		w.Write([]byte(": ping\n\n"))
		flusher.Flush()

		for {
			select {
			case ev, ok := <-c:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					return
				}
				if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
					return
				}
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	}))
}
