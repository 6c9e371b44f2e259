package devserver

import (
	"fmt"

	"github.com/dmitrijs2005/moviebook/internal/client/models"
)

// Demo accounts created when seeding is enabled.
const (
	DemoAdminEmail    = "admin@moviebook.dev"
	DemoAdminPassword = "admin123"
	DemoUserEmail     = "jane@moviebook.dev"
	DemoUserPassword  = "jane123"
)

var demoHistory = []models.HistoryEntry{
	{
		Date: "2024-05-01", Time: "19:30", Title: "Spider-Man: Homecoming", Cinema: "ebv.id",
		Seat: "C4, C5", Total: models.Amount("30"),
		Genres: []models.Genre{{Name: "Action"}, {Name: "Adventure"}},
	},
	{
		Date: "2024-05-12", Time: "13:00", Title: "Lion King", Cinema: "CineOne21",
		Seat: "F7", Total: models.Amount("15"),
		Genres: []models.Genre{{Name: "Family"}, {Name: "Animation"}},
	},
}

// Seed creates the demo admin and a demo moviegoer with two past orders.
func Seed(s *Store) error {
	if _, err := s.CreateUser(DemoAdminEmail, "", models.RoleAdmin, DemoAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	u, err := s.CreateUser(DemoUserEmail, "Jane Doe", "", DemoUserPassword)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	s.AddHistory(u.ID, demoHistory...)
	return nil
}
