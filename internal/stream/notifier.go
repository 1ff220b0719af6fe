package stream

import "sync"

// Notifier broadcasts a best-effort wakeup to every subscribed stream
// when a message lands in the store. It carries no payload and makes no
// delivery guarantee; subscribers still poll, the wakeup only removes
// the fixed poll latency. Safe for concurrent use.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a wakeup channel. The returned cancel func must be
// called when the connection closes.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}

// Wake signals every subscriber without blocking. A subscriber that
// already has a pending wakeup is skipped.
func (n *Notifier) Wake() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
