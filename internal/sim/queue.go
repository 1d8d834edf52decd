package sim

// DefaultQueueSize bounds the number of commands waiting for a tick.
const DefaultQueueSize = 64

// Queue buffers commands between ticks. Each tick consumes at most one.
type Queue struct {
	cmds     []Command
	capacity int
	dropped  int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &Queue{cmds: make([]Command, 0, capacity), capacity: capacity}
}

// Push enqueues c. When the queue is full the command is dropped and Push
// returns false; quit is always accepted.
func (q *Queue) Push(c Command) bool {
	if len(q.cmds) >= q.capacity && c.Kind != CmdQuit {
		q.dropped++
		return false
	}
	q.cmds = append(q.cmds, c)
	return true
}

func (q *Queue) Pop() (Command, bool) {
	if len(q.cmds) == 0 {
		return Command{}, false
	}
	c := q.cmds[0]
	q.cmds = q.cmds[1:]
	return c, true
}

func (q *Queue) Len() int     { return len(q.cmds) }
func (q *Queue) Dropped() int { return q.dropped }
