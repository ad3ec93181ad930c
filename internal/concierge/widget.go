package concierge

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Widget holds a chat transcript. Replies are scheduled with a timer and
// cannot be cancelled; a reply that fires while the widget is closed is
// dropped instead of appended.
type Widget struct {
	latency time.Duration
	notify  func(Message)

	mu         sync.Mutex
	transcript []Message
	mounted    bool
	epoch      uint64
	pending    int
	nextID     int64
}

// NewWidget creates an open widget seeded with the greeting. notify, if not
// nil, is called with each reply that is appended.
func NewWidget(latency time.Duration, notify func(Message)) *Widget {
	g := Greeting()
	return &Widget{
		latency:    latency,
		notify:     notify,
		transcript: []Message{g},
		mounted:    true,
		nextID:     g.ID + 1,
	}
}

// Send appends a user message and schedules the reply. Blank input and
// input sent to a closed widget are ignored.
func (w *Widget) Send(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	w.mu.Lock()
	if !w.mounted {
		w.mu.Unlock()
		return false
	}
	w.transcript = append(w.transcript, w.message(SenderUser, text))
	history := slices.Clone(w.transcript)
	epoch := w.epoch
	w.pending++
	w.mu.Unlock()

	time.AfterFunc(w.latency, func() {
		w.deliver(epoch, Respond(history))
	})
	return true
}

// deliver appends a reply unless the widget was closed after it was sent.
func (w *Widget) deliver(epoch uint64, text string) {
	w.mu.Lock()
	w.pending--
	if !w.mounted || epoch != w.epoch {
		w.mu.Unlock()
		return
	}
	msg := w.message(SenderAI, text)
	w.transcript = append(w.transcript, msg)
	w.mu.Unlock()

	if w.notify != nil {
		w.notify(msg)
	}
}

// message must be called with w.mu held.
func (w *Widget) message(sender Sender, text string) Message {
	m := Message{ID: w.nextID, Sender: sender, Text: text, Time: time.Now()}
	w.nextID++
	return m
}

// Close unmounts the widget. Pending replies still fire but are discarded,
// even if the widget is opened again before they do.
func (w *Widget) Close() {
	w.mu.Lock()
	w.mounted = false
	w.epoch++
	w.mu.Unlock()
}

// Open mounts the widget again; the transcript is kept.
func (w *Widget) Open() {
	w.mu.Lock()
	w.mounted = true
	w.mu.Unlock()
}

// Transcript returns a copy of the messages so far.
func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.transcript)
}

// Typing reports whether a reply is still pending.
func (w *Widget) Typing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending > 0
}
