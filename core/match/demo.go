package match

import (
	"time"

	"github.com/arbitres/console/core"
)

var demo = []Match{
	{
		ID: 1, HomeTeam: "ES Tunis", AwayTeam: "Club Africain",
		Date: core.NewDate(2024, time.January, 15), Time: "20:00",
		Stadium: "Stade Olympique de Radès",
		Referees: Referees{
			Principal: "Ahmed Ben Ali", Assistant1: "Fatma Khelil",
			Assistant2: "Mohamed Trabelsi", Fourth: "Salah Ben Youssef",
		},
		Status: Scheduled,
	},
	{
		ID: 2, HomeTeam: "CS Sfaxien", AwayTeam: "US Monastir",
		Date: core.NewDate(2024, time.January, 20), Time: "19:30",
		Stadium: "Stade Taïeb Mhiri",
		Referees: Referees{
			Principal: "Amina Khelil", Assistant1: "Hassan Ben Salem",
			Assistant2: "Nadia Ben Amor", Fourth: "Karim Ben Ali",
		},
		Status: InProgress,
		Score:  &Score{Home: 1, Away: 0},
	},
	{
		ID: 3, HomeTeam: "CA Bizertin", AwayTeam: "AS Marsa",
		Date: core.NewDate(2024, time.January, 25), Time: "18:00",
		Stadium: "Stade Municipal de Bizerte",
		Referees: Referees{
			Principal: "Omar Ben Youssef", Assistant1: "Leila Ben Salem",
			Assistant2: "Youssef Ben Ali", Fourth: "Samira Ben Amor",
		},
		Status: Completed,
		Score:  &Score{Home: 2, Away: 1},
	},
}

// Demo returns the demonstration matches, labelled with league.
func Demo(league string) []Match {
	out := make([]Match, len(demo))
	for i, m := range demo {
		m.League = league
		if m.Score != nil {
			s := *m.Score
			m.Score = &s
		}
		out[i] = m
	}
	return out
}
