package tracing

import (
	"sync"

	"github.com/google/uuid"
)

// IDPool manages a pool of pre-generated span ids to amortize generation
// overhead on the instrumentation path.
type IDPool struct {
	factory func() string
	ids     chan string
	stopCh  chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewIDPool creates an id pool with the given capacity. A nil factory
// uses random UUIDs.
func NewIDPool(capacity int, factory func() string) *IDPool {
	if factory == nil {
		factory = uuid.NewString
	}
	pool := &IDPool{
		ids:     make(chan string, capacity),
		factory: factory,
		stopCh:  make(chan struct{}),
	}
	go pool.refill()
	return pool
}

// Get retrieves an id from the pool, or generates one directly if the
// pool is empty (burst load).
func (p *IDPool) Get() SpanID {
	select {
	case id := <-p.ids:
		return SpanID(id)
	default:
		return SpanID(p.factory())
	}
}

// refill keeps the pool topped up in the background.
func (p *IDPool) refill() {
	for {
		select {
		case <-p.stopCh:
			return
		default:
			select {
			case p.ids <- p.factory():
			case <-p.stopCh:
				return
			}
		}
	}
}

// Close shuts down the pool's refill goroutine. Get remains usable and
// falls back to direct generation.
func (p *IDPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		close(p.stopCh)
		p.closed = true
	}
}
