package uci

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestEngine(in string) (*Engine, *bytes.Buffer) {
	out := &bytes.Buffer{}
	e := New(strings.NewReader(in), out, zerolog.Nop(), 1<<20)
	return e, out
}

func TestUCIHandshake(t *testing.T) {
	e, out := newTestEngine("uci\nquit\n")
	defer e.Close()

	e.Run()

	lines := splitLines(out.String())
	require.Contains(t, lines, "id name "+engineName)
	require.Contains(t, lines, "id author "+engineAuthor)
	require.Contains(t, lines, "uciok")
}

func TestUCIIsReady(t *testing.T) {
	e, out := newTestEngine("isready\nquit\n")
	defer e.Close()

	e.Run()

	require.Contains(t, splitLines(out.String()), "readyok")
}

// TestUCIGoFromStartposEmitsBestmove exercises a full position/go cycle:
// with 60 s on the clock and no increment the move budget is
// 60000/20 = 3 s, and a bestmove line must appear shortly after it.
func TestUCIGoFromStartposEmitsBestmove(t *testing.T) {
	in := "position startpos\ngo wtime 60000 btime 60000 winc 0 binc 0\n"
	e, out := newTestEngine(in)
	defer e.Close()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	deadline := time.After(4 * time.Second)
	for {
		if strings.Contains(out.String(), "bestmove ") {
			break
		}
		select {
		case <-deadline:
			t.Fatal("no bestmove emitted within the deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestUCIUnknownCommandIsIgnored(t *testing.T) {
	e, out := newTestEngine("notacommand\nisready\nquit\n")
	defer e.Close()

	e.Run()

	require.Contains(t, splitLines(out.String()), "readyok")
}

func splitLines(s string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
