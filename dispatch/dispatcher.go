// Package dispatch routes normalized chat commands to the session registry,
// behind the cooldown gate. It owns the user-facing validation the board
// deliberately skips: board-size bounds on start, coordinate bounds on
// reveal and flag.
package dispatch

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/sweepbot/sweepbot/cooldown"
	"github.com/sweepbot/sweepbot/game"
)

const (
	CmdStart  = "start"
	CmdReveal = "reveal"
	CmdFlag   = "flag"
	CmdStop   = "stop"
	CmdHelp   = "help"
)

// Command is one normalized invocation: player identity, the venue it came
// from, command name, and the already-parsed primitive options the command
// uses.
type Command struct {
	Player game.PlayerID
	Venue  string
	Name   string

	Row, Col int
	Flag     bool

	Rows, Cols int
}

// Reply is what the front-end shows the invoking player directly; renderer
// updates to the shared board message go through the game.Notifier instead.
type Reply struct {
	Text      string
	BoardText string
	State     game.LifecycleState
}

type Dispatcher struct {
	registry *game.Registry
	gate     *cooldown.Gate
	guard    *VenueGuard
	clock    clock.Clock
	log      logrus.FieldLogger
}

func NewDispatcher(registry *game.Registry, gate *cooldown.Gate, guard *VenueGuard, clk clock.Clock, log logrus.FieldLogger) *Dispatcher {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{
		registry: registry,
		gate:     gate,
		guard:    guard,
		clock:    clk,
		log:      log,
	}
}

// Handle executes one command. The venue check runs first; every command
// class is gated on the configured venue. The cooldown is consumed only
// when the command is accepted and handled, so a rejection never burns the
// window.
func (d *Dispatcher) Handle(cmd Command) (Reply, error) {
	now := d.clock.Now()

	if err := d.guard.Allow(cmd.Venue); err != nil {
		d.log.WithFields(logrus.Fields{
			"player":  cmd.Player,
			"command": cmd.Name,
			"venue":   cmd.Venue,
		}).Warn("command from wrong venue")
		return Reply{}, err
	}

	if err := d.gate.Check(string(cmd.Player), cmd.Name, now); err != nil {
		d.log.WithFields(logrus.Fields{
			"player":  cmd.Player,
			"command": cmd.Name,
		}).Warn("command on cooldown")
		return Reply{}, err
	}

	reply, err := d.route(cmd)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"player":  cmd.Player,
			"command": cmd.Name,
		}).WithError(err).Warn("command rejected")
		return Reply{}, err
	}

	d.gate.MarkInvoked(string(cmd.Player), cmd.Name, now)

	d.log.WithFields(logrus.Fields{
		"player":  cmd.Player,
		"command": cmd.Name,
		"state":   reply.State.String(),
	}).Debug("command handled")

	return reply, nil
}

func (d *Dispatcher) route(cmd Command) (Reply, error) {
	switch cmd.Name {
	case CmdStart:
		return d.start(cmd)
	case CmdReveal:
		return d.reveal(cmd)
	case CmdFlag:
		return d.flag(cmd)
	case CmdStop:
		return d.stop(cmd)
	case CmdHelp:
		return Reply{Text: HelpText}, nil
	default:
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
}

func (d *Dispatcher) start(cmd Command) (Reply, error) {
	if cmd.Rows != cmd.Cols || cmd.Rows < game.MinBoardSize || cmd.Rows > game.MaxBoardSize {
		return Reply{}, fmt.Errorf("%w: choose a square board between %dx%d and %dx%d, got %dx%d",
			ErrInvalidBoardSize, game.MinBoardSize, game.MinBoardSize, game.MaxBoardSize, game.MaxBoardSize, cmd.Rows, cmd.Cols)
	}

	session, err := d.registry.CreateSession(cmd.Player, game.BoardConfig{Rows: cmd.Rows, Cols: cmd.Cols})
	if err != nil {
		return Reply{}, err
	}

	view := session.View()
	return Reply{
		Text:      fmt.Sprintf("game started, %dx%d board", cmd.Rows, cmd.Cols),
		BoardText: view.BoardText,
		State:     view.State,
	}, nil
}

func (d *Dispatcher) reveal(cmd Command) (Reply, error) {
	session, err := d.registry.Get(cmd.Player)
	if err != nil {
		return Reply{}, err
	}
	if err := checkBounds(session, cmd.Row, cmd.Col); err != nil {
		return Reply{}, err
	}

	view := session.ApplyReveal(cmd.Row, cmd.Col)

	reply := Reply{BoardText: view.BoardText, State: view.State}
	switch view.State {
	case game.StateWon:
		reply.Text = "Congratulations! You won!"
	case game.StateLost:
		reply.Text = "Game Over! You hit a mine!"
	default:
		reply.Text = fmt.Sprintf("revealed (%d, %d)", cmd.Row, cmd.Col)
	}
	return reply, nil
}

func (d *Dispatcher) flag(cmd Command) (Reply, error) {
	session, err := d.registry.Get(cmd.Player)
	if err != nil {
		return Reply{}, err
	}
	if err := checkBounds(session, cmd.Row, cmd.Col); err != nil {
		return Reply{}, err
	}

	view := session.ApplyFlag(cmd.Row, cmd.Col, cmd.Flag)

	verb := "flagged"
	if !cmd.Flag {
		verb = "unflagged"
	}
	return Reply{
		Text:      fmt.Sprintf("%s (%d, %d)", verb, cmd.Row, cmd.Col),
		BoardText: view.BoardText,
		State:     view.State,
	}, nil
}

func (d *Dispatcher) stop(cmd Command) (Reply, error) {
	session, err := d.registry.Get(cmd.Player)
	if err != nil {
		return Reply{}, err
	}
	if err := session.Stop(cmd.Player); err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Game stopped!", State: game.StateStopped}, nil
}

// checkBounds validates a coordinate against the live board. The board
// itself treats out-of-range as a silent no-op, so user feedback has to
// happen here.
func checkBounds(session *game.GameSession, row, col int) error {
	rows, cols := session.BoardSize()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return fmt.Errorf("%w: (%d, %d) is outside the %dx%d board", ErrOutOfRange, row, col, rows, cols)
	}
	return nil
}

// HelpText is the static command summary served by the help command.
const HelpText = `Minesweeper commands:
- start <rows> <cols>    create a new game (square, 5..10)
- reveal <row> <col>     reveal a cell
- flag <row> <col> <on>  flag or unflag a cell
- stop                   stop your game
- help                   show this message`
