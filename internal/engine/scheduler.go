package engine

import (
	"container/heap"
	"sync"

	"github.com/orps-game/orps-server/internal/models"
)

// Scheduler holds deferred actions ordered by absolute deadline. There is no
// cancellation; an action whose target has since vanished fails at dispatch
// instead.
type Scheduler struct {
	mu   sync.Mutex
	heap scheduledHeap
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule queues the action for its deadline.
func (s *Scheduler) Schedule(sa models.ScheduledAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.heap, sa)
}

// ScheduleAt queues action to run at the given unix-millisecond time.
func (s *Scheduler) ScheduleAt(action models.Action, executeAt int64) {
	s.Schedule(models.NewScheduledAction(action, executeAt))
}

// DrainDue pops every action whose deadline has passed, in deadline order.
func (s *Scheduler) DrainDue(nowMillis int64) []models.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []models.Action
	for s.heap.Len() > 0 && s.heap[0].ExecuteAt <= nowMillis {
		sa := heap.Pop(&s.heap).(models.ScheduledAction)
		due = append(due, sa.Action)
	}
	return due
}

// NextDeadline returns the earliest pending deadline, ok false when empty.
func (s *Scheduler) NextDeadline() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.heap.Len() == 0 {
		return 0, false
	}
	return s.heap[0].ExecuteAt, true
}

// Len reports the number of pending actions.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Len()
}

type scheduledHeap []models.ScheduledAction

func (h scheduledHeap) Len() int           { return len(h) }
func (h scheduledHeap) Less(i, j int) bool { return h[i].ExecuteAt < h[j].ExecuteAt }
func (h scheduledHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *scheduledHeap) Push(x any)        { *h = append(*h, x.(models.ScheduledAction)) }
func (h *scheduledHeap) Pop() any {
	old := *h
	n := len(old)
	sa := old[n-1]
	*h = old[:n-1]
	return sa
}
