package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hellbingo/models"
	"hellbingo/service"

	log "github.com/sirupsen/logrus"
)

const prompt = "> "

// Console is a line-oriented shell over the game command surface
type Console struct {
	game  service.GameService
	stats service.StatsService
	in    io.Reader
	out   io.Writer
}

// New creates a console reading commands from in and writing to out.
// stats may be nil, which disables the stats command.
func New(game service.GameService, stats service.StatsService, in io.Reader, out io.Writer) *Console {
	return &Console{
		game:  game,
		stats: stats,
		in:    in,
		out:   out,
	}
}

type command struct {
	usage   string
	help    string
	handler func(ctx context.Context, args []string) error
}

func (c *Console) commands() map[string]command {
	return map[string]command{
		"start":    {"start", "start a new campaign", c.cmdStart},
		"night":    {"night", "leave the shop and begin the night", c.cmdNight},
		"draw":     {"draw [n]", "draw one number, or n numbers", c.cmdDraw},
		"snipe":    {"snipe", "mark a random open number on your card", c.cmdSnipe},
		"sabotage": {"sabotage", "remove a match from the leading prisoner", c.cmdSabotage},
		"shield":   {"shield", "protect yourself from execution tonight", c.cmdShield},
		"buy":      {"buy <snipe|sabotage|shield>", "buy a power-up in the shop", c.cmdBuy},
		"continue": {"continue", "move on after the night is resolved", c.cmdContinue},
		"abandon":  {"abandon", "give up the current campaign", c.cmdAbandon},
		"status":   {"status", "show ink, stock and night", c.cmdStatus},
		"card":     {"card", "show your card", c.cmdCard},
		"stats":    {"stats [n]", "show archived campaign statistics", c.cmdStats},
		"cheat":    {"cheat", "set ink to the cheat amount", c.cmdCheat},
		"help":     {"help", "list commands", c.cmdHelp},
	}
}

// Run reads commands until quit, end of input or ctx cancellation
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.printf("Welcome to hell. Type 'help' for commands.\n")
	commands := c.commands()
	for {
		c.printf(prompt)
		select {
		case <-ctx.Done():
			c.printf("\n")
			return nil
		case line, ok := <-lines:
			if !ok {
				c.printf("\n")
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}

			fields := strings.Fields(strings.ToLower(line))
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "quit" || fields[0] == "exit" {
				c.printf("Bye.\n")
				return nil
			}

			cmd, exists := commands[fields[0]]
			if !exists {
				c.printf("Unknown command %q. Type 'help'.\n", fields[0])
				continue
			}
			if err := cmd.handler(ctx, fields[1:]); err != nil {
				c.printf("%s\n", describeError(err))
				log.WithFields(log.Fields{
					"command": fields[0],
					"error":   err,
				}).Debug("Command rejected")
			}
		}
	}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// describeError maps game errors to player-facing text
func describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrCannotAfford):
		return "Not enough ink."
	case errors.Is(err, service.ErrNoneAvailable):
		return "You have none of those."
	case errors.Is(err, service.ErrCardFull):
		return "Your card is already full."
	case errors.Is(err, service.ErrNothingToSabotage):
		return "There is nobody left to sabotage."
	case errors.Is(err, service.ErrShieldAlreadyActive):
		return "Your shield is already up."
	case errors.Is(err, service.ErrCheatsDisabled):
		return "Cheats are disabled."
	case errors.Is(err, service.ErrInvalidState):
		return "You can't do that right now."
	case errors.Is(err, models.ErrUnknownPowerUp):
		return "No such power-up. Choose snipe, sabotage or shield."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (c *Console) cmdStart(ctx context.Context, args []string) error {
	if err := c.game.StartCampaign(ctx); err != nil {
		return err
	}
	snap := c.game.Snapshot()
	c.printf("A new campaign begins. You have %d ink.\n", snap.Currency)
	c.printShop(snap)
	return nil
}

func (c *Console) cmdNight(ctx context.Context, args []string) error {
	if err := c.game.BeginNight(ctx); err != nil {
		return err
	}
	snap := c.game.Snapshot()
	c.printf("Night %d falls. %d prisoners remain besides you.\n", snap.Night, snap.EnemyCount)
	c.printCard(snap)
	return nil
}

func (c *Console) cmdDraw(ctx context.Context, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("draw count must be a positive number")
		}
		count = n
	}

	for i := 0; i < count; i++ {
		result, err := c.game.DrawNext(ctx)
		if err != nil {
			return err
		}
		if result.Ignored {
			c.printf("Nothing happens. The night is over.\n")
			return nil
		}

		c.printf("Drawn: %d", result.Number)
		if result.Match.PlayerMatched {
			c.printf("  (on your card!)")
		}
		c.printf("\n")
		c.printRows(result.Match.RowsCompleted)

		if result.Resolution != nil {
			c.printResolution(result.Resolution)
			return nil
		}
	}
	return nil
}

func (c *Console) cmdSnipe(ctx context.Context, args []string) error {
	result, err := c.game.UseSnipe(ctx)
	if err != nil {
		return err
	}
	c.printf("Snipe marks %d on your card.\n", result.Number)
	c.printRows(result.RowsCompleted)
	if result.Resolution != nil {
		c.printResolution(result.Resolution)
	}
	return nil
}

func (c *Console) cmdSabotage(ctx context.Context, args []string) error {
	result, err := c.game.UseSabotage(ctx)
	if err != nil {
		return err
	}
	if result.NothingRemoved {
		c.printf("You sabotage %s, but they had nothing to lose.\n", result.TargetName)
		return nil
	}
	c.printf("You sabotage %s: %d is unmarked, %d matches left.\n",
		result.TargetName, result.RemovedNumber, result.TargetCount)
	return nil
}

func (c *Console) cmdShield(ctx context.Context, args []string) error {
	if err := c.game.UseShield(ctx); err != nil {
		return err
	}
	c.printf("Your shield is up for tonight.\n")
	return nil
}

func (c *Console) cmdBuy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: buy <snipe|sabotage|shield>")
	}
	kind, err := models.ParsePowerUpKind(args[0])
	if err != nil {
		return err
	}
	if err := c.game.Purchase(ctx, kind); err != nil {
		return err
	}
	snap := c.game.Snapshot()
	c.printf("Bought %s. %d ink left, %d in stock.\n", kind, snap.Currency, snap.Stock[kind])
	return nil
}

func (c *Console) cmdContinue(ctx context.Context, args []string) error {
	if err := c.game.ContinueAfterResolution(ctx); err != nil {
		return err
	}
	snap := c.game.Snapshot()
	if snap.State == models.GameStateMenu {
		c.printf("Back at the menu. Type 'start' to play again.\n")
		return nil
	}
	c.printShop(snap)
	return nil
}

func (c *Console) cmdAbandon(ctx context.Context, args []string) error {
	if err := c.game.Abandon(ctx); err != nil {
		return err
	}
	c.printf("You abandon the campaign.\n")
	return nil
}

func (c *Console) cmdStatus(ctx context.Context, args []string) error {
	snap := c.game.Snapshot()
	c.printf("State: %s\n", snap.State)
	if snap.Started {
		c.printf("Night: %d  Prisoners: %d\n", snap.Night, snap.EnemyCount)
	}
	c.printf("Ink: %d\n", snap.Currency)
	c.printStock(snap)
	if snap.State == models.GameStatePlaying {
		c.printf("Draws: %d  Last: %d  Shield: %t\n", len(snap.DrawHistory), snap.LastDrawn, snap.ShieldActive)
	}
	return nil
}

func (c *Console) cmdCard(ctx context.Context, args []string) error {
	snap := c.game.Snapshot()
	if len(snap.CardNumbers) == 0 {
		c.printf("You have no card yet.\n")
		return nil
	}
	c.printCard(snap)
	return nil
}

func (c *Console) cmdStats(ctx context.Context, args []string) error {
	if c.stats == nil {
		return fmt.Errorf("no campaign archive configured")
	}
	limit := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("stats count must be a positive number")
		}
		limit = n
	}

	summary, err := c.stats.GetSummary(ctx)
	if err != nil {
		return err
	}
	recent, err := c.stats.GetRecent(ctx, limit)
	if err != nil {
		return err
	}
	c.printStats(summary, recent)
	return nil
}

func (c *Console) cmdCheat(ctx context.Context, args []string) error {
	if err := c.game.ApplyCheat(ctx); err != nil {
		return err
	}
	c.printf("Ink set to %d.\n", c.game.Snapshot().Currency)
	return nil
}

func (c *Console) cmdHelp(ctx context.Context, args []string) error {
	c.printHelp(c.commands())
	return nil
}
