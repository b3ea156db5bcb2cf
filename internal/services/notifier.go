package services

import (
	"sync"

	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/ports"
)

// Dispatcher runs fn on whatever execution context the host renders from.
type Dispatcher func(fn func())

// InlineDispatcher runs notifications on the caller's goroutine.
func InlineDispatcher(fn func()) { fn() }

// SerialDispatcher delivers notifications one at a time, in submission order,
// on a single goroutine it owns. It stands in for a UI thread. Dispatch never
// blocks, so callbacks may dispatch further notifications.
type SerialDispatcher struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	closed  bool
	done    chan struct{}
}

// NewSerialDispatcher starts the delivery goroutine. buffer is the initial
// queue capacity; the queue grows as needed.
func NewSerialDispatcher(buffer int) *SerialDispatcher {
	d := &SerialDispatcher{
		pending: make([]func(), 0, buffer),
		done:    make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

func (d *SerialDispatcher) loop() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.pending) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.pending) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.pending[0]
		d.pending[0] = nil
		d.pending = d.pending[1:]
		d.mu.Unlock()

		fn()
	}
}

// Dispatch enqueues fn. Notifications sent after Close are dropped.
func (d *SerialDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = append(d.pending, fn)
	d.cond.Signal()
}

// Close delivers everything already queued and stops the goroutine. It must
// not be called from a dispatched callback.
func (d *SerialDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		d.cond.Broadcast()
	}
	d.mu.Unlock()
	<-d.done
}

// notifier forwards updater events to the host observer through the dispatcher.
type notifier struct {
	observer ports.UpdateObserver
	dispatch Dispatcher
}

func newNotifier(observer ports.UpdateObserver, dispatch Dispatcher) *notifier {
	if dispatch == nil {
		dispatch = InlineDispatcher
	}
	return &notifier{observer: observer, dispatch: dispatch}
}

func (n *notifier) status(s models.Status) {
	key := s.Key()
	if key == "" || n.observer == nil {
		return
	}
	n.dispatch(func() { n.observer.OnUpdateStatus(key) })
}

func (n *notifier) found(version string) {
	if n.observer == nil {
		return
	}
	n.dispatch(func() { n.observer.OnUpdateFound(version) })
}

func (n *notifier) noUpdate() {
	if n.observer == nil {
		return
	}
	n.dispatch(func() { n.observer.OnNoUpdateFound() })
}

func (n *notifier) failed() {
	if n.observer == nil {
		return
	}
	n.dispatch(func() { n.observer.OnUpdateCheckError() })
}

func (n *notifier) progress(percent int) {
	if n.observer == nil {
		return
	}
	n.dispatch(func() { n.observer.OnUpdateProgress(percent) })
}

// ChannelObserver turns observer callbacks into UpdateEvent values on a channel.
// Sends block when the channel is full, so size it for the host's consumer.
type ChannelObserver struct {
	events chan models.UpdateEvent
}

var _ ports.UpdateObserver = (*ChannelObserver)(nil)

func NewChannelObserver(buffer int) *ChannelObserver {
	return &ChannelObserver{events: make(chan models.UpdateEvent, buffer)}
}

func (o *ChannelObserver) Events() <-chan models.UpdateEvent {
	return o.events
}

func (o *ChannelObserver) OnUpdateStatus(key string) {
	o.events <- models.UpdateEvent{Type: models.EventStatus, Key: key}
}

func (o *ChannelObserver) OnUpdateFound(version string) {
	o.events <- models.UpdateEvent{Type: models.EventFound, Version: version}
}

func (o *ChannelObserver) OnNoUpdateFound() {
	o.events <- models.UpdateEvent{Type: models.EventNoUpdate}
}

func (o *ChannelObserver) OnUpdateCheckError() {
	o.events <- models.UpdateEvent{Type: models.EventError}
}

func (o *ChannelObserver) OnUpdateProgress(percent int) {
	o.events <- models.UpdateEvent{Type: models.EventProgress, Percent: percent}
}
