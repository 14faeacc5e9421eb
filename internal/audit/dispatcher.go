package audit

import (
	"context"
	"log"
	"sync"
)

const (
	ActionClientCreated      = "client_created"
	ActionClientUpdated      = "client_updated"
	ActionClientDeleted      = "client_deleted"
	ActionClientPhoneAdded   = "client_phone_added"
	ActionClientPhoneRemoved = "client_phone_removed"

	EntityClient = "client"
)

type Event struct {
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	sink  Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch enqueues ev without blocking. A full queue drops the event,
// and so does a closed dispatcher: auditing never fails the caller.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Printf("audit dispatcher closed, dropping %s event", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are
// written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
