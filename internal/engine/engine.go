package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/orps-game/orps-server/internal/lobby"
	"github.com/orps-game/orps-server/internal/models"
)

const (
	defaultQueueSize     = 256
	defaultSweepInterval = 60 * time.Second
)

// Messenger delivers an event to its recipients. Recipients without a live
// connection are skipped.
type Messenger interface {
	Deliver(event models.Event)
}

// Recorder receives every processed action for out-of-band consumers. A nil
// recorder disables history.
type Recorder interface {
	Record(action models.Action)
}

// Engine owns all session mutation. Actions from any number of producers are
// funneled through a single consumer goroutine, so handlers never race. The
// scheduler's deferred actions re-enter the same dispatch path when due.
type Engine struct {
	queue     chan models.Action
	scheduler *Scheduler

	dispatcher *Dispatcher
	messenger  Messenger
	recorder   Recorder
	lobbies    *lobby.Store

	log *logrus.Logger

	sweepInterval time.Duration
	now           func() int64
}

func New(dispatcher *Dispatcher, messenger Messenger, recorder Recorder, lobbies *lobby.Store, log *logrus.Logger) *Engine {
	return &Engine{
		queue:         make(chan models.Action, defaultQueueSize),
		scheduler:     NewScheduler(),
		dispatcher:    dispatcher,
		messenger:     messenger,
		recorder:      recorder,
		lobbies:       lobbies,
		log:           log,
		sweepInterval: defaultSweepInterval,
		now:           func() int64 { return time.Now().UnixMilli() },
	}
}

// SetSweepInterval overrides how often expired lobbies are collected. Must
// be called before Run.
func (e *Engine) SetSweepInterval(d time.Duration) {
	e.sweepInterval = d
}

// Submit queues an action for processing. Blocks while the queue is full.
func (e *Engine) Submit(action models.Action) {
	e.queue <- action
}

// Schedule queues a deferred action directly, bypassing a handler response.
func (e *Engine) Schedule(sa models.ScheduledAction) {
	e.scheduler.Schedule(sa)
}

// Run consumes actions until ctx is canceled. The loop sleeps until the next
// intake, the next scheduler deadline, or the next sweep tick, whichever
// comes first.
func (e *Engine) Run(ctx context.Context) {
	sweep := time.NewTicker(e.sweepInterval)
	defer sweep.Stop()

	for {
		for _, action := range e.scheduler.DrainDue(e.now()) {
			e.process(action)
		}

		var timer *time.Timer
		var timerC <-chan time.Time
		if deadline, ok := e.scheduler.NextDeadline(); ok {
			wait := time.Duration(deadline-e.now()) * time.Millisecond
			if wait < 0 {
				wait = 0
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case action := <-e.queue:
			e.process(action)
		case <-timerC:
			// due actions drain at the top of the loop
		case <-sweep.C:
			e.sweepLobbies()
		}

		if timer != nil {
			timer.Stop()
		}
	}
}

// process runs one action through dispatch and fans out the results. A
// panicking handler is contained here: the fault is logged and the author
// gets a generic failure event.
func (e *Engine) process(action models.Action) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("recovered from panic while handling action %s/%s: %v", action.Category, action.ID, r)
			if action.Author != nil && !action.IsServerAction() {
				e.messenger.Deliver(models.SomethingWentWrong(action.Author.UUID))
			}
		}
	}()

	response := e.dispatcher.Dispatch(action)

	for _, event := range response.Events {
		// A failed server-scheduled action means its target vanished after
		// scheduling. That is the cancellation path, not a client error.
		if action.IsServerAction() && event.Category == models.CategoryError {
			e.log.Warnf("scheduled action %s failed: %s", action.ID, event.ID)
			continue
		}
		e.messenger.Deliver(event)
	}

	for _, sa := range response.Scheduled {
		e.scheduler.Schedule(sa)
	}

	if e.recorder != nil {
		e.recorder.Record(action)
	}
}

func (e *Engine) sweepLobbies() {
	for _, uri := range e.lobbies.SweepExpired(e.now()) {
		e.log.Infof("Deleted lobby %s after deletion grace expired", uri)
	}
}
