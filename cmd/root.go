package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sweepbot/sweepbot/config"
	"github.com/sweepbot/sweepbot/cooldown"
	"github.com/sweepbot/sweepbot/dispatch"
	"github.com/sweepbot/sweepbot/game"
)

var (
	playerName   string
	settingsPath string
)

var rootCmd = &cobra.Command{
	Use:   "sweepbot",
	Short: "Run turn-based Minesweeper sessions from a console",
	Long: `sweepbot runs the Minesweeper game service with a console front-end
standing in for the chat venue.

Commands read from stdin:
	start <rows> <cols>
	reveal <row> <col>
	flag <row> <col> <on|off>
	stop
	help
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&playerName, "player", "p", "console", "Player name for this console session")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to the settings file (overrides SWEEPBOT_SETTINGS)")
}

func run() error {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	environment, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	level, err := logrus.ParseLevel(environment.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logrus.SetLevel(level)
	log := logrus.StandardLogger()

	path := environment.SettingsPath
	if settingsPath != "" {
		path = settingsPath
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return err
	}

	clk := clock.New()
	registry := game.NewRegistry(game.RegistryConfig{
		TimeLimit:    settings.TimeLimit(),
		ScanInterval: settings.ScanInterval(),
		Clock:        clk,
		Notifier:     consoleNotifier{},
		Log:          log,
	})
	gate := cooldown.NewGate(settings.Cooldown())

	channelID, err := config.LoadChannelID(environment.ChannelFile)
	if err != nil {
		return fmt.Errorf("load channel id: %w", err)
	}
	guard := dispatch.NewVenueGuard(channelID)
	if channelID == "" {
		// Nothing configured yet: let the console play locally until an
		// admin sets a channel.
		guard.Set(consoleVenue)
		log.Info("no venue configured, defaulting to console")
	} else {
		log.WithField("channel", channelID).Info("venue configured")
	}

	dispatcher := dispatch.NewDispatcher(registry, gate, guard, clk, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go registry.Run(ctx)

	fmt.Println(dispatch.HelpText)
	repl(ctx, dispatcher, guard, environment.ChannelFile)
	return nil
}

// consoleVenue identifies the console front-end as a venue of its own.
const consoleVenue = "console"

func repl(ctx context.Context, dispatcher *dispatch.Dispatcher, guard *dispatch.VenueGuard, channelFile string) {
	player := game.PlayerID(playerName)
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		if handled := handleChannel(line, guard, channelFile); handled {
			continue
		}

		cmd, err := parseLine(player, line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		reply, err := dispatcher.Handle(cmd)
		if err != nil {
			fmt.Println(err)
			continue
		}

		if reply.BoardText != "" {
			fmt.Print(reply.BoardText)
		}
		if reply.Text != "" {
			fmt.Println(reply.Text)
		}
	}
}

func parseLine(player game.PlayerID, line string) (dispatch.Command, error) {
	fields := strings.Fields(line)
	cmd := dispatch.Command{Player: player, Venue: consoleVenue, Name: fields[0]}

	switch cmd.Name {
	case dispatch.CmdStart:
		if len(fields) != 3 {
			return cmd, fmt.Errorf("usage: start <rows> <cols>")
		}
		rows, cols, err := parseCoords(fields[1], fields[2])
		if err != nil {
			return cmd, err
		}
		cmd.Rows, cmd.Cols = rows, cols
	case dispatch.CmdReveal:
		if len(fields) != 3 {
			return cmd, fmt.Errorf("usage: reveal <row> <col>")
		}
		row, col, err := parseCoords(fields[1], fields[2])
		if err != nil {
			return cmd, err
		}
		cmd.Row, cmd.Col = row, col
	case dispatch.CmdFlag:
		if len(fields) != 4 {
			return cmd, fmt.Errorf("usage: flag <row> <col> <on|off>")
		}
		row, col, err := parseCoords(fields[1], fields[2])
		if err != nil {
			return cmd, err
		}
		cmd.Row, cmd.Col = row, col
		switch fields[3] {
		case "on":
			cmd.Flag = true
		case "off":
			cmd.Flag = false
		default:
			return cmd, fmt.Errorf("usage: flag <row> <col> <on|off>")
		}
	}

	return cmd, nil
}

// handleChannel implements the admin channel command against the one-line
// channel file: "channel set <id>" and "channel clear".
func handleChannel(line string, guard *dispatch.VenueGuard, channelFile string) bool {
	fields := strings.Fields(line)
	if fields[0] != "channel" {
		return false
	}

	switch {
	case len(fields) == 3 && fields[1] == "set":
		if err := config.SaveChannelID(channelFile, fields[2]); err != nil {
			fmt.Println("failed to save channel id:", err)
		} else {
			guard.Set(fields[2])
			fmt.Println("Channel ID saved!")
		}
	case len(fields) == 2 && fields[1] == "clear":
		if err := config.ClearChannelID(channelFile); err != nil {
			fmt.Println("failed to clear channel id:", err)
		} else {
			guard.Set(consoleVenue)
			fmt.Println("Channel ID removed!")
		}
	default:
		fmt.Println("usage: channel set <id> | channel clear")
	}
	return true
}

func parseCoords(a, b string) (int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", a)
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", b)
	}
	return first, second, nil
}

// consoleNotifier is the rendering collaborator for console play. A chat
// front-end would edit the message identified by view.MessageRef instead;
// here the command replies already echo the board, so only the expiry
// notification, which has no triggering command, needs printing.
type consoleNotifier struct{}

func (consoleNotifier) GameUpdated(view game.SessionView) {}

func (consoleNotifier) GameEnded(view game.SessionView, reason game.LifecycleState) {
	if reason == game.StateTimedOut {
		fmt.Println("Times up! Game has ended")
	}
}
