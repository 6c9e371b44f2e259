package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Genre struct {
	Name string `json:"name"`
}

// HistoryEntry is one booked ticket as returned by GET /transactions/history.
// Entries are read-only and refetched on every visit of the page.
type HistoryEntry struct {
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	Title  string      `json:"title"`
	Cinema string      `json:"cinema"`
	Seat   string      `json:"seat"`
	Total  Amount      `json:"total"`
	Genres []Genre     `json:"genres"`
}

// Category joins genre names the way the ticket details show them.
func (e HistoryEntry) Category() string {
	names := make([]string, 0, len(e.Genres))
	for _, g := range e.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// Amount is a ticket total as the backend sent it. Numbers keep their literal
// form and strings such as "Rp 50.000" are kept verbatim.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("total: %w", err)
	}
	*a = Amount(n)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if isNumberLiteral(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func isNumberLiteral(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}
