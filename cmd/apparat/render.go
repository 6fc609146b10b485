package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/interaction"
	"github.com/talgya/apparat/internal/journal"
	"github.com/talgya/apparat/internal/policy"
	"github.com/talgya/apparat/internal/relations"
	"github.com/talgya/apparat/internal/stats"
)

var (
	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C8102E"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	refusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF00"))
)

func heading(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf(format, args...)))
}

func sessionName(turn int) string {
	return humanize.Ordinal(turn) + " session"
}

func outcomeLine(r interaction.Result) string {
	switch r.Outcome {
	case interaction.OutcomeSuccess:
		return successStyle.Render("SUCCESS") + "  " + r.Summary
	case interaction.OutcomeFailure:
		return failureStyle.Render("FAILURE") + "  " + r.Summary
	default:
		return refusedStyle.Render("REFUSED") + "  " + r.Reason
	}
}

func printResult(w io.Writer, r interaction.Result) {
	fmt.Fprintln(w, outcomeLine(r))
	if r.Outcome != interaction.OutcomePreconditionNotMet {
		fmt.Fprintf(w, "  %s, %d AP, p=%.0f%%\n", r.MethodID, r.CostAP, r.Probability*100)
	}
	if r.Flavor != "" {
		fmt.Fprintln(w, dimStyle.Render("  "+r.Flavor))
	}
}

func printDelta(w io.Writer, label string, d stats.Delta) {
	if d.IsZero() {
		return
	}
	parts := make([]string, 0, len(d))
	for _, s := range stats.All {
		if v, ok := d[s]; ok && v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", s, v))
		}
	}
	fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(parts, ", "))
}

func printStats(w io.Writer, l *stats.Ledger) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range stats.All {
		fmt.Fprintf(tw, "%s\t%d", s, l.Get(s))
		if i%2 == 1 {
			fmt.Fprintln(tw)
		} else {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)
	tw.Flush()
}

func printRoster(w io.Writer, list []*characters.Character) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFACTION\tTRACK\tRANK\tDISP\tEVID\tSTATUS")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			c.Name, c.Faction.Title(), c.Track, c.PositionIndex,
			c.Disposition, c.EvidenceLevel, c.Status.DisplayText())
	}
	tw.Flush()
}

func printCharacter(w io.Writer, c *characters.Character, rels []relations.Relation) {
	heading(w, "%s", c.Name)
	fmt.Fprintf(w, "%s (%s, %s track, rank %d)\n", c.Title, c.Faction.Title(), c.Track, c.PositionIndex)
	fmt.Fprintf(w, "Status: %s", c.Status.DisplayText())
	if c.StatusDetails != "" {
		fmt.Fprintf(w, " (%s)", c.StatusDetails)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Disposition %d (%s), evidence %d, alert %d\n",
		c.Disposition, interaction.TrustFor(c.Disposition), c.EvidenceLevel, c.AlertLevel)
	if c.IsFullyRevealed {
		p := c.Personality
		fmt.Fprintf(w, "Ambitious %d  Paranoid %d  Ruthless %d  Competent %d  Loyal %d  Corrupt %d\n",
			p.Ambitious, p.Paranoid, p.Ruthless, p.Competent, p.Loyal, p.Corrupt)
	} else {
		fmt.Fprintln(w, dimStyle.Render("Personality not yet profiled."))
	}
	if len(rels) > 0 {
		fmt.Fprintln(w, "Connections:")
		for _, r := range rels {
			fmt.Fprintf(w, "  %-24s %-22s %+d\n", r.Name, r.Label, r.DispositionEstimate)
		}
	}
	if hist := c.RecentHistory(3); len(hist) > 0 {
		fmt.Fprintln(w, "Recent dealings:")
		for _, h := range hist {
			fmt.Fprintf(w, "  %s: %s (%s)\n", sessionName(h.Turn), h.Summary, h.Outcome)
		}
	}
}

func printOptions(w io.Writer, title string, opts []interaction.CharacterInteraction) {
	if len(opts) == 0 {
		return
	}
	heading(w, "%s", title)
	for _, o := range opts {
		line := fmt.Sprintf("  %-22s %-7s %d AP  %s", o.ID, o.Risk, o.CostAP, o.Description)
		if o.Disabled {
			line = dimStyle.Render(line + " [" + o.DisabledReason + "]")
		}
		fmt.Fprintln(w, line)
	}
}

func printSlot(w io.Writer, s *policy.Slot, validate func(optionID string) policy.Validation) {
	heading(w, "%s (%s, %s)", s.Name, s.ID, s.Institution)
	for _, o := range s.Options {
		mark := " "
		switch {
		case o.ID == s.CurrentOptionID:
			mark = "*"
		case s.HasPendingProposal && o.ID == s.PendingOptionID:
			mark = "~"
		}
		line := fmt.Sprintf(" %s %-22s power %d", mark, o.ID, o.MinimumPowerRequired)
		if o.ID != s.CurrentOptionID {
			v := validate(o.ID)
			switch {
			case v.CanChange && v.CanDecree:
				line += "  propose or decree"
			case v.CanChange:
				line += "  propose"
			case v.CanDecree:
				line += "  decree only"
			default:
				line = dimStyle.Render(line + "  " + v.Reason)
			}
		}
		fmt.Fprintln(w, line)
	}
}

func printJournal(w io.Writer, entries []journal.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-16s %s\n", dimStyle.Render(fmt.Sprintf("[%3d]", e.Turn)), e.Category, e.Summary)
	}
}
