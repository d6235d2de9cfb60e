package uci

import (
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/search"
)

// SearchTask asks the worker to search pos for up to moveTime, replaying
// priorMoves first to seed repetition detection. result receives exactly
// one SearchResult.
type SearchTask struct {
	Pos        *board.Position
	PriorMoves []board.Move
	MaxDepth   search.Depth
	MoveTime   time.Duration
	result     chan SearchResult
}

// SearchResult is what a SearchTask produces once the search ends, whether
// by completing its deepest iteration or by being cut off at the deadline.
type SearchResult struct {
	Best  board.Move
	Value search.Value
	Stats search.Stats
}

// NewGame asks the worker to discard everything it has learned so far.
type NewGame struct{}

type workerMessage interface{}

// Worker owns one Searcher for its entire lifetime and serializes access to
// it: the UCI I/O goroutine is the single producer, this goroutine the
// single consumer. This keeps the Searcher itself free of any locking.
type Worker struct {
	searcher *search.Searcher
	inbox    chan workerMessage
	done     chan struct{}
}

// NewWorker allocates a transposition table of ttBytes and starts the
// worker goroutine running.
func NewWorker(ttBytes int) *Worker {
	w := &Worker{
		searcher: search.NewSearcher(search.NewTranspositionTable(ttBytes)),
		inbox:    make(chan workerMessage),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for msg := range w.inbox {
		switch m := msg.(type) {
		case SearchTask:
			best, value, stats := w.searcher.Search(m.Pos, m.PriorMoves, m.MaxDepth, m.MoveTime)
			m.result <- SearchResult{Best: best, Value: value, Stats: stats}
		case NewGame:
			w.searcher.ClearForNewGame()
		}
	}
}

// Submit runs task synchronously from the caller's point of view: it
// blocks until the worker accepts the task, then blocks again until the
// search completes and returns its result.
func (w *Worker) Submit(task SearchTask) SearchResult {
	return <-w.SubmitAsync(task)
}

// SubmitAsync hands task to the worker and returns, as soon as the worker
// accepts it, a channel that receives the single SearchResult once the
// search finishes. The UCI
// front-end uses this so its input loop stays free to read a "stop"
// command while a search is in flight.
func (w *Worker) SubmitAsync(task SearchTask) <-chan SearchResult {
	task.result = make(chan SearchResult, 1)
	w.inbox <- task
	return task.result
}

// SubmitNewGame clears the worker's accumulated state. The inbox is
// unbuffered, so it blocks until the worker accepts the message, which is
// after any in-flight search has finished; it does not wait for the
// clearing itself.
func (w *Worker) SubmitNewGame() {
	w.inbox <- NewGame{}
}

// RequestStop interrupts any search currently running on the worker. It is
// safe to call whether or not a search is in flight.
func (w *Worker) RequestStop() {
	w.searcher.RequestStop()
}

// Close stops the worker goroutine. The worker must have no in-flight
// Submit call when Close is invoked.
func (w *Worker) Close() {
	close(w.inbox)
	<-w.done
}
