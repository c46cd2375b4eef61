package excuse

import (
	"context"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
)

// ErrNoRecipients is returned when a digest has nobody to go to.
var ErrNoRecipients = errors.New("no digest recipients")

const digestTemplate = "excuse_digest"

// DigestData feeds the excuse digest email templates.
type DigestData struct {
	Period       string
	Date         string
	Counts       map[string]int
	Excuses      []Excuse
	UsedFallback bool
}

// Notify builds the view for q and emails it as a digest to recipients.
func (svc *Service) Notify(ctx context.Context, q Query, recipients []mail.Address) (View, error) {
	if len(recipients) == 0 {
		return View{}, ErrNoRecipients
	}
	if svc.mailSvc == nil {
		return View{}, errors.New("email service not configured")
	}
	view, err := svc.View(ctx, q)
	if err != nil {
		return View{}, err
	}

	msg := DigestMessage(view, recipients)
	if err = msg.Render(svc.appName); err != nil {
		return View{}, errors.Wrap(err, "rendering excuse digest")
	}
	svc.mailSvc.SendMessages(msg)
	svc.logger.Info("excuse digest sent", map[string]interface{}{
		"recipients": len(recipients),
		"excuses":    len(view.Excuses),
		"period":     view.Period,
	})
	return view, nil
}

// DigestMessage builds the digest email.
func DigestMessage(view View, recipients []mail.Address) *core.EmailMessage {
	subject := "Excuses des arbitres - " + view.Period.Label() + " - " + view.Date.String()
	if view.Degraded() {
		subject += " (démo)"
	}
	return &core.EmailMessage{
		To:           recipients,
		Subject:      subject,
		TemplateName: digestTemplate,
		TemplateData: DigestData{
			Period:       view.Period.Label(),
			Date:         view.Date.String(),
			Counts:       view.Counts.StringKeys(),
			Excuses:      view.Excuses,
			UsedFallback: view.Degraded(),
		},
	}
}
