package core

import "log"

// ContentChange describes one document mutation leaving the augmentation
// layer, for downstream consumers such as autosave or script triggers.
type ContentChange struct {
	FirstLine int
	LastLine  int
	Revision  uint64
}

// Notifier hands content-changed events to the host application over a
// bounded channel. Emission is fire-and-forget: this subsystem never waits
// on the consumer, and a full channel drops the notification with a log
// line rather than blocking the frame.
type Notifier struct {
	ch chan ContentChange
}

// NewNotifier builds a notifier with the given channel capacity.
func NewNotifier(size int) *Notifier {
	if size < 1 {
		size = 1
	}
	return &Notifier{ch: make(chan ContentChange, size)}
}

// Notify emits a change without blocking.
func (n *Notifier) Notify(c ContentChange) {
	select {
	case n.ch <- c:
	default:
		log.Printf("editview: change channel full, dropping notification for lines %d-%d", c.FirstLine, c.LastLine)
	}
}

// Changes returns the receive side consumed by the host application.
func (n *Notifier) Changes() <-chan ContentChange {
	return n.ch
}
