package history

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/moviebook/internal/client/nav"
)

// Tab is a link above the list.
type Tab struct {
	Label string
	Path  string
}

var Tabs = []Tab{
	{Label: "Account Settings", Path: nav.RouteProfile},
	{Label: "Order History", Path: nav.RouteOrderHistory},
}

const (
	msgLoading = "Loading ticket data..."
	msgEmpty   = "You do not have a ticket booking history yet"
)

func (p *Page) Render(w io.Writer) {
	status := p.Status()
	if status == StatusLoading {
		fmt.Fprintln(w, msgLoading)
		return
	}

	fmt.Fprintf(w, "%s | *%s\n\n", Tabs[0].Label, Tabs[1].Label)

	rows := p.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, msgEmpty)
		return
	}
	for i, r := range rows {
		renderRow(w, i+1, r)
	}
}

func renderRow(w io.Writer, n int, r Row) {
	e := r.Entry
	arrow := "▾"
	if r.Expanded {
		arrow = "▴"
	}
	fmt.Fprintf(w, "%d. %s - %s\n", n, e.Date, e.Time)
	fmt.Fprintf(w, "   %s\n", e.Title)
	fmt.Fprintf(w, "   %s\n", e.Cinema)
	fmt.Fprintf(w, "   [Ticket Used] [Paid]  Show Details %s\n", arrow)
	if !r.Expanded {
		return
	}
	fmt.Fprintln(w, "   Ticket Information")
	fmt.Fprintf(w, "     Movie: %s\n", e.Title)
	fmt.Fprintf(w, "     Category: %s\n", e.Category())
	fmt.Fprintf(w, "     Date: %s\n", e.Date)
	fmt.Fprintf(w, "     Time: %s\n", e.Time)
	fmt.Fprintf(w, "     Seat: %s\n", e.Seat)
	fmt.Fprintf(w, "     TOTAL: $ %s\n", e.Total)
}
