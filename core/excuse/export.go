package excuse

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var csvHeader = []string{
	"id", "prenom", "nom", "ligue", "date_debut", "date_fin",
	"motif", "statut", "piece_jointe", "date_soumission",
}

// WriteCSV writes excuses as CSV with a header row.
func WriteCSV(w io.Writer, excuses []Excuse) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, e := range excuses {
		row := []string{
			strconv.Itoa(e.ID), e.FirstName, e.LastName, e.League,
			e.StartDate.String(), e.EndDate.String(),
			e.Reason, e.Status.Label(), e.Attachment, e.CreatedAt.String(),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "writing csv row %d", e.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
