package cli

import (
	"fmt"

	"github.com/Makepad-fr/todotxt/internal/model"
	"github.com/Makepad-fr/todotxt/internal/ui"
)

// -------------- rendering helpers --------------

func (a *app) listPanel(group bool) error {
	recs, err := a.store.Records()
	if err != nil {
		return err
	}

	d, p := stats(recs)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Todos"),
		ui.SuccessStyle.Render("✔"), d,
		ui.PendingStyle.Render("•"), p,
		ui.AccentStyle.Render("Total"), len(recs),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.MutedStyle.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(recs)...)
	} else {
		lines = append(lines, flatLines(recs)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.MutedStyle.Render("Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(a.opt.Stdout, lines)
	return nil
}

func stats(recs []model.Record) (done, pending int) {
	for _, r := range recs {
		if r.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(recs []model.Record) []string {
	if len(recs) == 0 {
		return []string{ui.MutedStyle.Render("no items")}
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		idx := fmt.Sprintf("%2d.", r.Index)
		box := ui.MutedStyle.Render(ui.BoxUnchecked)
		title := r.Text
		if len(title) > 80 {
			title = title[:77] + "..."
		}
		if r.Done {
			box = ui.SuccessStyle.Render(ui.BoxChecked)
			title = ui.DoneStyle.Render(title)
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.MutedStyle.Render(idx), box, title))
	}
	return out
}

func groupLines(recs []model.Record) []string {
	var pend, done []model.Record
	for _, r := range recs {
		if r.Done {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	var lines []string
	lines = append(lines, ui.AccentStyle.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.MutedStyle.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.AccentStyle.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, ui.MutedStyle.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
