// Package uci implements a Universal Chess Interface front-end: a stdin/
// stdout protocol loop driven by a Worker.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/search"
)

const (
	engineName   = "chessplay"
	engineAuthor = "chessplay contributors"
)

// Engine runs the UCI protocol loop over in and out. Unrecognized commands
// are silently ignored, and a malformed position command is logged and
// dropped, rather than failing the session, since a GUI that sends a
// command this engine doesn't understand still expects the session to
// continue. Non-numeric values in a go command are ignored without a log
// line: that field keeps its default (or 0 for a clock field) and the
// search still starts.
type Engine struct {
	in  *bufio.Scanner
	out io.Writer
	log zerolog.Logger

	worker   *Worker
	position *board.Position
	moves    []board.Move

	// pendingDone is closed by the in-flight search's printer goroutine
	// once it has consumed the result and written bestmove, so
	// drainPending can wait on it without racing that goroutine for the
	// single-use result channel.
	pendingDone chan struct{}
}

// New builds a UCI engine. ttBytes sizes the transposition table the
// underlying worker allocates.
func New(in io.Reader, out io.Writer, log zerolog.Logger, ttBytes int) *Engine {
	return &Engine{
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		worker:   NewWorker(ttBytes),
		position: board.NewPosition(),
	}
}

// Close releases the underlying search worker.
func (e *Engine) Close() {
	e.worker.Close()
}

// Run reads commands until stdin closes or "quit" is received.
func (e *Engine) Run() {
	for e.in.Scan() {
		line := strings.TrimSpace(e.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			e.handleUCI()
		case "isready":
			e.println("readyok")
		case "ucinewgame":
			e.handleNewGame()
		case "position":
			e.handlePosition(args)
		case "go":
			e.handleGo(args)
		case "stop":
			e.handleStop()
		case "quit":
			e.drainPending()
			return
		default:
			// Unknown verbs are part of UCI's forward-compatibility story:
			// ignore them rather than ending the session.
		}
	}
}

func (e *Engine) println(s string) {
	fmt.Fprintln(e.out, s)
}

func (e *Engine) handleUCI() {
	e.println("id name " + engineName)
	e.println("id author " + engineAuthor)
	e.println("uciok")
}

func (e *Engine) handleNewGame() {
	e.drainPending()
	e.worker.SubmitNewGame()
	e.position = board.NewPosition()
	e.moves = nil
}

// handlePosition parses "position [startpos|fen <fen>] [moves <m1> <m2>...]".
func (e *Engine) handlePosition(args []string) {
	if len(args) == 0 {
		e.log.Warn().Msg("position: missing argument")
		return
	}

	idx := 0
	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		idx = 1
	case "fen":
		end := len(args)
		for i, a := range args[1:] {
			if a == "moves" {
				end = i + 1
				break
			}
		}
		if end <= 1 {
			e.log.Warn().Msg("position fen: missing FEN fields")
			return
		}
		fen := strings.Join(args[1:end], " ")
		p, err := board.ParseFEN(fen)
		if err != nil {
			e.log.Warn().Err(err).Str("fen", fen).Msg("position fen: parse failed")
			return
		}
		pos = p
		idx = end
	default:
		e.log.Warn().Str("arg", args[0]).Msg("position: unrecognized first argument")
		return
	}

	var moves []board.Move
	if idx < len(args) && args[idx] == "moves" {
		cur := pos
		for _, mv := range args[idx+1:] {
			m, err := uciToKxR(mv, cur)
			if err != nil {
				e.log.Warn().Err(err).Str("move", mv).Msg("position: malformed move, command dropped")
				return
			}
			moves = append(moves, m)
			cur = cur.Play(m)
		}
	}

	e.position = pos
	e.moves = moves
}

// handleGo parses "go wtime W btime B winc WI binc BI [depth D] [movetime MT]"
// and starts a search, computing the move's time budget as
// time_left/20 + increment/2 when wtime/btime are given.
func (e *Engine) handleGo(args []string) {
	e.drainPending()

	maxDepth := search.Depth(64)
	moveTime := 5 * time.Second

	var wtime, btime, winc, binc time.Duration
	haveClock := false
	explicitMoveTime := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					maxDepth = search.Depth(d)
				}
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				if ms, err := strconv.Atoi(args[i+1]); err == nil {
					moveTime = time.Duration(ms) * time.Millisecond
					explicitMoveTime = true
				}
				i++
			}
		case "wtime":
			if i+1 < len(args) {
				wtime = parseMillis(args[i+1])
				haveClock = true
				i++
			}
		case "btime":
			if i+1 < len(args) {
				btime = parseMillis(args[i+1])
				haveClock = true
				i++
			}
		case "winc":
			if i+1 < len(args) {
				winc = parseMillis(args[i+1])
				i++
			}
		case "binc":
			if i+1 < len(args) {
				binc = parseMillis(args[i+1])
				i++
			}
		case "infinite":
			moveTime = 24 * time.Hour
			explicitMoveTime = true
		}
	}

	if haveClock && !explicitMoveTime {
		timeLeft, inc := wtime, winc
		if e.position.SideToMove == board.Black {
			timeLeft, inc = btime, binc
		}
		moveTime = timeLeft/20 + inc/2
		if moveTime <= 0 {
			moveTime = 50 * time.Millisecond
		}
	}

	result := e.worker.SubmitAsync(SearchTask{
		Pos:        e.position,
		PriorMoves: e.moves,
		MaxDepth:   maxDepth,
		MoveTime:   moveTime,
	})
	done := make(chan struct{})
	e.pendingDone = done

	go func() {
		defer close(done)
		r := <-result
		e.println(fmt.Sprintf("info depth %d nodes %d", r.Stats.Depth, r.Stats.NodesVisited))
		e.println("bestmove " + kxrToUCI(r.Best))
	}()
}

func parseMillis(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

func (e *Engine) handleStop() {
	e.worker.RequestStop()
}

// drainPending blocks until any in-flight search has printed its result,
// so state mutations (position, ucinewgame) never race a running search.
func (e *Engine) drainPending() {
	if e.pendingDone == nil {
		return
	}
	e.worker.RequestStop()
	<-e.pendingDone
	e.pendingDone = nil
}
