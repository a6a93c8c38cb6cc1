package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

const timeFormat = "2006-01-02 15:04:05 MST"

// renderRound prints a round summary, one line per source.
func renderRound(w io.Writer, st *Styles, round *domain.RoundResult) {
	if round.Skipped {
		fmt.Fprintf(w, "%s (%s)\n", st.Warning("Sync skipped"), round.SkipReason)
		return
	}

	fmt.Fprintf(w, "%s %s\n", st.Title("Round"), st.Muted(round.ID))
	for i := range round.Results {
		renderRun(w, st, &round.Results[i])
	}

	rejected := round.Rejected()
	summary := fmt.Sprintf("%d sources, %d rejected, took %s",
		len(round.Results), rejected, round.EndedAt.Sub(round.StartedAt).Round(time.Millisecond))
	if rejected > 0 {
		fmt.Fprintln(w, st.Warning(summary))
	} else {
		fmt.Fprintln(w, st.Success(summary))
	}
}

func renderRun(w io.Writer, st *Styles, run *domain.SyncRunResult) {
	if run.Succeeded() {
		fmt.Fprintf(w, "  %s %-16s %s\n", st.Success("ok "), run.Source, run.Message)
	} else {
		fmt.Fprintf(w, "  %s %-16s %s\n", st.Error("err"), run.Source, run.Message)
	}
	for _, e := range run.RecordErrors {
		fmt.Fprintf(w, "      %s\n", st.Muted(e.Error()))
	}
}

// renderStatus prints the watermark and the latest run per source.
func renderStatus(w io.Writer, st *Styles, status *domain.SyncStatus) {
	fmt.Fprintln(w, st.Title("Sync status"))

	if status.Watermark == nil {
		fmt.Fprintln(w, "  Last sync: never")
		fmt.Fprintln(w, "  Next due:  now")
	} else {
		fmt.Fprintf(w, "  Last sync: %s\n", status.Watermark.LastSync.Local().Format(timeFormat))
		fmt.Fprintf(w, "  Next due:  %s\n", status.NextDue.Local().Format(timeFormat))
	}
	fmt.Fprintf(w, "  Interval:  %s\n", status.Interval)
	if status.Running {
		fmt.Fprintf(w, "  %s\n", st.Warning("A round is running"))
	}

	if len(status.Recent) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Title("Recent runs"))
	for i := range status.Recent {
		run := &status.Recent[i]
		fmt.Fprintf(w, "  %s ", st.Muted(run.StartedAt.Local().Format(timeFormat)))
		if run.Succeeded() {
			fmt.Fprintf(w, "%s %-16s %s\n", st.Success("ok "), run.Source, run.Message)
		} else {
			fmt.Fprintf(w, "%s %-16s %s\n", st.Error("err"), run.Source, run.Message)
		}
	}
}

// renderEntities prints entities as a table.
func renderEntities(w io.Writer, st *Styles, kind domain.EntityKind, entities []domain.Entity, total int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch kind {
	case domain.KindRepresentative:
		fmt.Fprintln(tw, "ID\tNAME\tPARTY\tUPDATED")
		for _, e := range entities {
			r := e.Record.(*domain.Representative)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ExternalID, deref(r.Name), deref(r.PartyShort, r.Party), e.UpdatedAt.Local().Format(timeFormat))
		}
	case domain.KindCase:
		fmt.Fprintln(tw, "ID\tNUMBER\tTITLE\tSTATUS")
		for _, e := range entities {
			c := e.Record.(*domain.Case)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ExternalID, deref(c.Number), truncate(deref(c.ShortTitle, c.Title), 60), deref(c.Status))
		}
	}
	_ = tw.Flush()
	fmt.Fprintln(w, st.Muted(fmt.Sprintf("%d of %d", len(entities), total)))
}

// deref returns the first non-nil value, or "-".
func deref(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return "-"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
