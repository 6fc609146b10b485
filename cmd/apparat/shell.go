package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/policy"
)

// saver persists a game snapshot.
type saver interface {
	SaveGame(engine.State) error
}

// shell interprets player commands against a game.
type shell struct {
	game   *engine.Game
	out    io.Writer
	store  saver                   // nil disables saving
	reader *sdkmetric.ManualReader // nil disables the metrics command
	log    *slog.Logger
}

const helpText = `Commands:
  status                         turn, budget and stats
  roster                         officials still in play
  who <name>                     dossier and connections of an official
  mention <name>                 look up an official, opening a file if unknown
  options <name>                 interactions available against an official
  investigate <method> <name>    gather evidence
  cultivate <method> <name>      improve disposition
  denounce <method> <name>       spend evidence to bring an official down
  policy                         policy slots and what you can change
  propose <slot> <option>        table a proposal, enacted next session
  decree <slot> <option>         change a policy immediately
  journal [n]                    the last n journal entries
  metrics                        counters recorded this run
  end                            close the session
  quit                           save and leave`

// exec runs one command line. It reports quit when the player asks to
// leave. Returned errors are infrastructure failures; player mistakes are
// printed.
func (s *shell) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "status":
		s.status()
	case "roster":
		s.roster()
	case "who", "relations":
		return false, s.who(strings.Join(args, " "), false)
	case "mention":
		return false, s.who(strings.Join(args, " "), true)
	case "options":
		s.options(strings.Join(args, " "))
	case "investigate", "cultivate", "denounce":
		if len(args) < 2 {
			fmt.Fprintf(s.out, "usage: %s <method> <name>\n", cmd)
			return false, nil
		}
		return false, s.interact(interaction.Category(cmd), args[0], strings.Join(args[1:], " "))
	case "policy":
		s.policy()
	case "propose", "decree":
		if len(args) != 2 {
			fmt.Fprintf(s.out, "usage: %s <slot> <option>\n", cmd)
			return false, nil
		}
		return false, s.change(args[0], args[1], cmd == "decree")
	case "journal":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				n = v
			}
		}
		printJournal(s.out, s.game.Journal().Recent(n))
	case "metrics":
		return false, s.metrics(ctx)
	case "end":
		return false, s.end()
	case "quit", "exit":
		return true, s.save()
	default:
		fmt.Fprintf(s.out, "unknown command %q (try help)\n", cmd)
	}
	return false, nil
}

func (s *shell) status() {
	b := s.game.Resolver().Budget()
	p := s.game.Player()
	heading(s.out, "%s, the %s", p.Name, sessionName(s.game.Turn()))
	fmt.Fprintf(s.out, "%s track, rank %d. Interactions %d/%d, action points %d/%d.\n",
		p.Track, p.PositionIndex, b.InteractionsRemaining, b.MaxInteractions, b.ActionPoints, b.MaxActionPoints)
	pol := s.game.Policy()
	fmt.Fprintf(s.out, "Decrees permitted: %t. Purges sanctioned: %t.\n", pol.DecreesEnabled(), pol.PurgesEnabled())
	printStats(s.out, s.game.Ledger())
}

func (s *shell) roster() {
	var present []*characters.Character
	for _, c := range s.game.Registry().All() {
		if !c.Status.IsTerminal() {
			present = append(present, c)
		}
	}
	printRoster(s.out, present)
}

// lookup resolves ref to a character, printing a message when nobody
// matches.
func (s *shell) lookup(ref string) *characters.Character {
	if ref == "" {
		fmt.Fprintln(s.out, "name an official")
		return nil
	}
	c, err := s.game.Character(ref)
	if err != nil {
		fmt.Fprintf(s.out, "no official matches %q\n", ref)
		return nil
	}
	return c
}

func (s *shell) who(ref string, create bool) error {
	var c *characters.Character
	if create && ref != "" {
		c = s.game.Mention(ref)
	} else if c = s.lookup(ref); c == nil {
		return nil
	}
	rels, err := s.game.Relations(c.ID)
	if err != nil {
		return err
	}
	printCharacter(s.out, c, rels)
	return nil
}

func (s *shell) options(ref string) {
	c := s.lookup(ref)
	if c == nil {
		return
	}
	r := s.game.Resolver()
	printOptions(s.out, "Investigate", r.AvailableInvestigateOptions(c))
	printOptions(s.out, "Cultivate", r.AvailableCultivateOptions(c))
	printOptions(s.out, "Denounce", r.AvailableDenounceOptions(c))
}

func (s *shell) interact(category interaction.Category, methodID, ref string) error {
	c := s.lookup(ref)
	if c == nil {
		return nil
	}
	r := s.game.Resolver()

	var err error
	switch category {
	case interaction.CategoryInvestigate:
		var res interaction.InvestigateResult
		if res, err = r.Investigate(c, methodID); err == nil {
			printResult(s.out, res.Result)
		}
	case interaction.CategoryCultivate:
		var res interaction.CultivateResult
		if res, err = r.Cultivate(c, methodID); err == nil {
			printResult(s.out, res.Result)
			printDelta(s.out, "stats", res.StatChanges)
		}
	case interaction.CategoryDenounce:
		var res interaction.DenounceResult
		if res, err = r.Denounce(c, methodID); err == nil {
			printResult(s.out, res.Result)
			printDelta(s.out, "repercussions", res.Repercussions)
		}
	}
	if errors.Is(err, interaction.ErrUnknownMethod) || errors.Is(err, interaction.ErrWrongCategory) {
		fmt.Fprintf(s.out, "%s is not a %s method\n", methodID, category)
		return nil
	}
	return err
}

func (s *shell) policy() {
	pol := s.game.Policy()
	for _, slot := range pol.Slots() {
		printSlot(s.out, slot, func(optionID string) policy.Validation {
			v, _ := pol.Validate(slot.ID, optionID, true)
			return v
		})
	}
	fmt.Fprintf(s.out, "Your power: %d\n", pol.Power())
}

func (s *shell) change(slotID, optionID string, asDecree bool) error {
	res, err := s.game.ChangePolicy(slotID, optionID, asDecree)
	if errors.Is(err, policy.ErrUnknownSlot) || errors.Is(err, policy.ErrUnknownOption) {
		fmt.Fprintf(s.out, "no such policy: %s %s\n", slotID, optionID)
		return nil
	}
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintln(s.out, refusedStyle.Render("REFUSED")+"  "+res.Message)
		return nil
	}
	fmt.Fprintln(s.out, successStyle.Render(strings.ToUpper(string(res.Route)))+"  "+res.Message)
	printDelta(s.out, "stats", res.Effects)
	return nil
}

func (s *shell) end() error {
	report := s.game.AdvanceTurn()
	for _, e := range report.Enacted {
		fmt.Fprintf(s.out, "Enacted %s: %s\n", e.SlotID, e.OptionID)
		printDelta(s.out, "stats", e.Effects)
	}
	heading(s.out, "The %s opens.", sessionName(report.Turn))
	return s.save()
}

func (s *shell) save() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveGame(s.game.State()); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *shell) metrics(ctx context.Context) error {
	if s.reader == nil {
		fmt.Fprintln(s.out, "metrics are not being collected")
		return nil
	}
	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			fmt.Fprintf(s.out, "%-40s %d\n", m.Name, total)
		}
	}
	return nil
}
