// Implements the SpotQueue, which holds cars waiting to enter or leave the lot.

package sim

import (
	"fmt"
	"strings"
)

// SpotQueue is a FIFO queue of spots.
// The simulator keeps two of them: cars waiting to be admitted and cars that
// have left the lot.
type SpotQueue struct {
	queue []*Spot // FIFO queue of spots
}

// Enqueue adds a spot to the back of the queue.
func (q *SpotQueue) Enqueue(s *Spot) {
	if s == nil {
		panic("Enqueue: spot must not be nil")
	}
	q.queue = append(q.queue, s)
}

func (q *SpotQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of spots in the queue.
func (q *SpotQueue) Len() int {
	return len(q.queue)
}

// IsEmpty reports whether the queue holds no spots.
func (q *SpotQueue) IsEmpty() bool {
	return len(q.queue) == 0
}

// Peek returns the spot at the front of the queue without removing it.
// Peeking an empty queue is a bookkeeping bug in the caller and panics.
func (q *SpotQueue) Peek() *Spot {
	if len(q.queue) == 0 {
		panic("Peek: queue is empty")
	}
	return q.queue[0]
}

// Dequeue removes and returns the spot at the front of the queue.
// Dequeuing an empty queue panics, same as Peek.
func (q *SpotQueue) Dequeue() *Spot {
	if len(q.queue) == 0 {
		panic("Dequeue: queue is empty")
	}
	front := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return front
}

// Items returns the queue contents in FIFO order.
// The returned slice is the queue's internal storage; callers may iterate
// over it but MUST NOT append to or reslice it.
func (q *SpotQueue) Items() []*Spot {
	return q.queue
}
