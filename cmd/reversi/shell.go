// cmd/reversi/shell.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jason-s-yu/reversi/internal/board"
	"github.com/jason-s-yu/reversi/internal/game"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/jason-s-yu/reversi/internal/session"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

type promptKind int

const (
	promptWaitForOpponent promptKind = iota
	promptPlayAgain
)

// shell is the terminal front end. Session callbacks only print and queue
// prompts; all stdin handling happens in run.
type shell struct {
	logger  *logrus.Logger
	sess    atomic.Pointer[session.Session]
	prompts chan promptKind
	pending *promptKind
}

func newShell(logger *logrus.Logger) *shell {
	return &shell{logger: logger, prompts: make(chan promptKind, 4)}
}

func (sh *shell) callbacks() session.Callbacks {
	return session.Callbacks{
		LoginAcceptedFn: func(name string) error {
			pterm.Success.Printfln("Logged in as %s", name)
			if s := sh.session(); s != nil {
				return s.RequestGame()
			}
			return nil
		},
		ColorAssignedFn: func(c board.Cell) error {
			pterm.Info.Printfln("You play %s. Waiting for an opponent...", colored(c))
			return nil
		},
		GameStartedFn: func(name string, c board.Cell, localTurn bool) error {
			pterm.Info.Printfln("Game started against %s (%s)", pterm.LightCyan(name), colored(c))
			sh.printBoard()
			sh.printTurn(localTurn)
			return nil
		},
		MoveRejectedFn: func(code protocol.MoveStatus) error {
			pterm.Warning.Printfln("Invalid move, try again (%s)", code)
			return nil
		},
		LocalMoveAppliedFn: func(x, y int) error {
			sh.printBoard()
			sh.printTurn(false)
			return nil
		},
		OpponentMoveAppliedFn: func(x, y int) error {
			pterm.Info.Printfln("Opponent played %d %d", x, y)
			sh.printBoard()
			sh.printTurn(true)
			return nil
		},
		GameEndedFn: func(o game.Outcome) error {
			if o.Kind == game.OutcomeWin {
				pterm.Success.Println(o.Message())
			} else {
				pterm.Info.Println(o.Message())
			}
			sh.queue(promptPlayAgain)
			return nil
		},
		OpponentDisconnectedFn: func() error {
			pterm.Warning.Println("Your opponent disconnected")
			sh.queue(promptWaitForOpponent)
			return nil
		},
		ReconnectedFn: func() error {
			pterm.Success.Println("Game resumed")
			if s := sh.session(); s != nil {
				sh.printBoard()
				sh.printTurn(s.Game().LocalTurn)
			}
			return nil
		},
		ConnectionWarningFn: func() error {
			pterm.Warning.Println("Connection issue, waiting for the server...")
			return nil
		},
		ZombieTimeoutFn: func(silence time.Duration) error {
			sh.logger.WithField("silence", silence).Warn("No heartbeat from server")
			return nil
		},
		FatalErrorFn: func(err error) {
			pterm.Error.Printfln("Connection lost: %v", err)
		},
	}
}

func (sh *shell) session() *session.Session {
	return sh.sess.Load()
}

func (sh *shell) queue(p promptKind) {
	select {
	case sh.prompts <- p:
	default:
		sh.logger.Warn("Prompt queue full, dropping prompt")
	}
}

func (sh *shell) printTurn(localTurn bool) {
	if localTurn {
		pterm.Info.Println("Your turn! Enter a move as: x y")
	} else {
		pterm.Info.Println("Waiting for opponent move")
	}
}

func (sh *shell) printBoard() {
	s := sh.session()
	if s == nil {
		return
	}
	st := s.Game()
	title := fmt.Sprintf("|%s %d : %d %s|", st.Local.Name, st.Local.Cells, st.Remote.Cells, st.Remote.Name)
	pterm.DefaultBox.WithTitle(title).WithTitleTopCenter().WithLeftPadding(2).WithRightPadding(2).Println(renderBoard(st.Rows))
}

// renderBoard draws rows with column and row indexes.
func renderBoard(rows []string) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < board.Size; x++ {
		fmt.Fprintf(&sb, " %d", x)
	}
	for y, row := range rows {
		fmt.Fprintf(&sb, "\n%d ", y)
		for i := 0; i < len(row); i++ {
			c, err := board.ParseCell(row[i])
			if err != nil {
				c = board.Empty
			}
			sb.WriteString(" " + colored(c))
		}
	}
	return sb.String()
}

func colored(c board.Cell) string {
	switch c {
	case board.ColorA:
		return pterm.LightRed(c.String())
	case board.ColorB:
		return pterm.LightBlue(c.String())
	default:
		return "."
	}
}

// parseMove reads "x y" or "x,y".
func parseMove(line string) (int, int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two coordinates, got %q", line)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column %q", fields[0])
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row %q", fields[1])
	}
	return x, y, nil
}

func parseYesNo(line string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit", "logout":
		return true
	}
	return false
}

// run reads commands from in until the user quits, input ends, ctx is done
// or the session stops.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	s := sh.session()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return s.Logout()
		case <-s.Done():
			return s.Err()
		case p := <-sh.prompts:
			sh.pending = &p
			sh.ask(p)
		case line, ok := <-lines:
			if !ok || isQuit(line) {
				return s.Logout()
			}
			done, err := sh.handleInput(s, line)
			if err != nil {
				pterm.Error.Println(err)
			}
			if done {
				return nil
			}
		}
	}
}

func (sh *shell) ask(p promptKind) {
	switch p {
	case promptWaitForOpponent:
		pterm.Info.Println("Wait for your opponent to come back? [y/n]")
	case promptPlayAgain:
		pterm.Info.Println("Play again? [y/n]")
	}
}

func (sh *shell) handleInput(s *session.Session, line string) (bool, error) {
	if strings.TrimSpace(line) == "" {
		return false, nil
	}
	if sh.pending != nil {
		yes, ok := parseYesNo(line)
		if !ok {
			sh.ask(*sh.pending)
			return false, nil
		}
		p := *sh.pending
		sh.pending = nil
		switch p {
		case promptWaitForOpponent:
			return false, s.RespondToOpponentDisconnect(yes)
		case promptPlayAgain:
			if yes {
				return false, s.RequestGame()
			}
			return true, s.Logout()
		}
	}

	if s.State() != session.StateInGame {
		pterm.Info.Printfln("No game in progress (%s)", s.State())
		return false, nil
	}
	x, y, err := parseMove(line)
	if err != nil {
		return false, err
	}
	return false, s.ProposeMove(x, y)
}
