// Package deletion collects teardown functions while objects are created
// and runs them newest-first when the program shuts down.
package deletion

import (
	log "github.com/sirupsen/logrus"
)

type entry struct {
	name string
	fn   func()
}

type Queue struct {
	entries []entry
}

func (q *Queue) Push(name string, fn func()) {
	q.entries = append(q.entries, entry{name: name, fn: fn})
}

func (q *Queue) Len() int {
	return len(q.entries)
}

// Flush runs every pushed function in reverse push order and empties the
// queue.
func (q *Queue) Flush() {
	for i := len(q.entries) - 1; i >= 0; i-- {
		e := q.entries[i]
		log.WithField("object", e.name).Debug("destroying")
		e.fn()
	}
	q.entries = q.entries[:0]
}
