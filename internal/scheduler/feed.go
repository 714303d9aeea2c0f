package scheduler

import (
	"context"
	"sync"
	"time"
)

// Artifact identifies one rendered output file.
type Artifact struct {
	Path      string
	CreatedAt time.Time
}

// Feed hands completed artifacts from the render loop to a consumer.
// Publish never blocks; the loop keeps rendering whether or not anyone
// drains the feed. Consumers read in push order.
type Feed struct {
	mu      sync.Mutex
	pending []Artifact
	notify  chan struct{}
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{notify: make(chan struct{}, 1)}
}

// Publish appends an artifact to the feed. Fire-and-forget.
func (f *Feed) Publish(artifact Artifact) {
	f.mu.Lock()
	f.pending = append(f.pending, artifact)
	f.mu.Unlock()
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of artifacts waiting to be consumed.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Next removes and returns the oldest artifact, blocking until one is
// published or ctx is done.
func (f *Feed) Next(ctx context.Context) (Artifact, error) {
	for {
		f.mu.Lock()
		if len(f.pending) > 0 {
			artifact := f.pending[0]
			f.pending = f.pending[1:]
			remaining := len(f.pending)
			f.mu.Unlock()
			if remaining > 0 {
				select {
				case f.notify <- struct{}{}:
				default:
				}
			}
			return artifact, nil
		}
		f.mu.Unlock()

		select {
		case <-f.notify:
		case <-ctx.Done():
			return Artifact{}, ctx.Err()
		}
	}
}
