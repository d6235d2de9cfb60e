package uci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/search"
)

func TestWorkerSubmitReturnsLegalMove(t *testing.T) {
	w := NewWorker(1 << 20)
	defer w.Close()

	result := w.Submit(SearchTask{
		Pos:      board.NewPosition(),
		MaxDepth: search.Depth(3),
		MoveTime: 500 * time.Millisecond,
	})

	require.NotEqual(t, board.NoMove, result.Best)
}

func TestWorkerRequestStopEndsLongSearch(t *testing.T) {
	w := NewWorker(1 << 20)
	defer w.Close()

	done := make(chan SearchResult, 1)
	go func() {
		done <- w.Submit(SearchTask{
			Pos:      board.NewPosition(),
			MaxDepth: search.Depth(64),
			MoveTime: time.Hour,
		})
	}()

	time.Sleep(20 * time.Millisecond)
	w.RequestStop()

	select {
	case result := <-done:
		require.NotEqual(t, board.NoMove, result.Best)
	case <-time.After(2 * time.Second):
		t.Fatal("RequestStop did not end the search in time")
	}
}

func TestWorkerSearchesAfterSubmitNewGame(t *testing.T) {
	w := NewWorker(1 << 20)
	defer w.Close()

	w.Submit(SearchTask{
		Pos:      board.NewPosition(),
		MaxDepth: search.Depth(3),
		MoveTime: 200 * time.Millisecond,
	})

	w.SubmitNewGame()

	result := w.Submit(SearchTask{
		Pos:      board.NewPosition(),
		MaxDepth: search.Depth(3),
		MoveTime: 200 * time.Millisecond,
	})
	require.NotEqual(t, board.NoMove, result.Best)
}
