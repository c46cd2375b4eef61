package excuse

import (
	"time"

	"github.com/arbitres/console/core"
)

func d(m time.Month, day int) core.Date {
	return core.NewDate(2024, m, day)
}

var demo = []Excuse{
	{
		ID: 1, FirstName: "Ahmed", LastName: "Ben Ali",
		StartDate: d(time.January, 15), EndDate: d(time.January, 20),
		Reason: "Maladie avec certificat médical", Attachment: "certificat_medical_ahmed.pdf",
		Status: Accepted, CreatedAt: d(time.January, 14), League: "Ligue 1",
	},
	{
		ID: 2, FirstName: "Fatma", LastName: "Khelil",
		StartDate: d(time.January, 18), EndDate: d(time.January, 25),
		Reason: "Décès dans la famille", Attachment: "acte_deces.pdf",
		Status: Accepted, CreatedAt: d(time.January, 17), League: "Ligue 2",
	},
	{
		ID: 3, FirstName: "Mohamed", LastName: "Trabelsi",
		StartDate: d(time.January, 22), EndDate: d(time.January, 28),
		Reason: "Problème de transport",
		Status: Rejected, CreatedAt: d(time.January, 21), League: "C1",
	},
	{
		ID: 4, FirstName: "Salah", LastName: "Ben Youssef",
		StartDate: d(time.February, 15), EndDate: d(time.February, 20),
		Reason: "Urgence familiale", Attachment: "justificatif_urgence.pdf",
		Status: Pending, CreatedAt: d(time.January, 24), League: "C2",
	},
	{
		ID: 5, FirstName: "Hassan", LastName: "Ben Salem",
		StartDate: d(time.February, 18), EndDate: d(time.February, 25),
		Reason: "Blessure sportive", Attachment: "certificat_blessure.pdf",
		Status: Pending, CreatedAt: d(time.January, 27), League: "Jeunes",
	},
	{
		ID: 6, FirstName: "Nadia", LastName: "Ben Amor",
		StartDate: d(time.March, 10), EndDate: d(time.March, 15),
		Reason: "Formation professionnelle",
		Status: Pending, CreatedAt: d(time.January, 30), League: "Coupe de Tunisie",
	},
	{
		ID: 7, FirstName: "Omar", LastName: "Khelil",
		StartDate: d(time.March, 20), EndDate: d(time.March, 25),
		Reason: "Voyage familial",
		Status: Pending, CreatedAt: d(time.February, 1), League: "Ligue 1",
	},
}

// Demo returns a copy of the fixed demonstration dataset.
func Demo() []Excuse {
	return append([]Excuse(nil), demo...)
}
