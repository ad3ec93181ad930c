package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alex-user-go/tripsearch/internal/concierge"
	"github.com/alex-user-go/tripsearch/internal/handler"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005DAA")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#005DAA"))

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F87AF")).
			Padding(0, 1).
			MarginBottom(1)

	priceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E31837"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF00"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")).
			Italic(true)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#005DAA"))

	aiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00875A"))
)

var title = cases.Title(language.English)

// heading is e.g. "Rental Cars in Maui".
func heading(q types.SearchQuery) string {
	kind := title.String(strings.ReplaceAll(string(q.Type), "-", " "))
	return fmt.Sprintf("%s in %s", kind, q.Destination)
}

func renderSearch(w io.Writer, q types.SearchQuery, resp *handler.SearchResponse, limit int) {
	fmt.Fprintln(w, titleStyle.Render(heading(q)))
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%d of %d results (%s)", resp.Stats.Shown, resp.Stats.Total, resp.Stats.Origin)))
	if resp.Stats.Notice != "" {
		fmt.Fprintln(w, noticeStyle.Render("note: "+resp.Stats.Notice))
	}
	fmt.Fprintln(w)

	if len(resp.Results) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No results match your filters."))
		return
	}

	results := resp.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for _, r := range results {
		fmt.Fprintln(w, blockStyle.Render(resultBlock(r)))
	}
	if len(results) < len(resp.Results) {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%d more not shown", len(resp.Results)-len(results))))
	}
}

func resultBlock(r types.DisplayResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("%d. %s", r.Rank, r.Title)))
	if r.Hotel != "" {
		line := r.Hotel
		if r.City != "" {
			line += ", " + r.City
		}
		fmt.Fprintf(&b, "%s\n", line)
	}
	if stars, ok := search.StarCount(r.RawResult); ok {
		rating := strings.Repeat("*", stars)
		if r.ReviewCount != "" {
			rating += " " + r.ReviewCount
		}
		fmt.Fprintf(&b, "%s\n", rating)
	}
	if len(r.Includes) > 0 {
		fmt.Fprintf(&b, "Includes: %s\n", strings.Join(r.Includes, " + "))
	}
	for _, f := range r.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	if r.AdjustText != "" {
		fmt.Fprintf(&b, "%s\n", metaStyle.Render(r.AdjustText))
	}
	b.WriteString(priceStyle.Render(r.PriceStatus))
	return b.String()
}

func renderDeals(w io.Writer, hunt []types.TreasureHuntDeal, hot []types.HotDeal) {
	fmt.Fprintln(w, titleStyle.Render("Treasure Hunt"))
	if len(hunt) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No deals right now."))
	}
	for _, d := range hunt {
		var b strings.Builder
		b.WriteString(headerStyle.Render(d.Title))
		for _, benefit := range d.Benefits {
			fmt.Fprintf(&b, "\n- %s", benefit)
		}
		if d.ExtrasValue != "" {
			fmt.Fprintf(&b, "\n%s", priceStyle.Render(d.ExtrasValue))
		}
		fmt.Fprintln(w, blockStyle.Render(b.String()))
	}

	fmt.Fprintln(w, titleStyle.Render("What's Hot"))
	if len(hot) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No deals right now."))
	}
	for _, d := range hot {
		var b strings.Builder
		b.WriteString(headerStyle.Render(d.Title))
		if d.Duration != "" {
			fmt.Fprintf(&b, "\n%s", metaStyle.Render(d.Duration))
		}
		for _, inc := range d.Inclusions {
			fmt.Fprintf(&b, "\n- %s", inc)
		}
		if d.Price != "" {
			fmt.Fprintf(&b, "\n%s", priceStyle.Render(d.Price))
		}
		fmt.Fprintln(w, blockStyle.Render(b.String()))
	}
}

func renderMessage(w io.Writer, m concierge.Message) {
	if m.Sender == concierge.SenderAI {
		fmt.Fprintln(w, aiStyle.Render("concierge>")+" "+m.Text)
		return
	}
	fmt.Fprintln(w, promptStyle.Render("you>")+" "+m.Text)
}
