package notify

import "sync"

// Queue is a thread-safe Notifier that buffers messages until a consumer
// drains them. The admin TUI's workflows notify from command goroutines;
// the model drains the queue back on the event loop.
type Queue struct {
	mu       sync.Mutex
	messages []Message
}

func (q *Queue) Notify(m Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, m)
}

// Drain returns the buffered messages and empties the queue.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.messages
	q.messages = nil
	return out
}
