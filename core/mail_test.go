package core

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessage_Render(t *testing.T) {
	t.Run("base templates are embedded", func(t *testing.T) {
		for _, name := range []string{"_base.txt", "_base.gohtml", "excuse_digest.txt", "excuse_digest.gohtml"} {
			_, err := templatesFS.Open("templates/email/" + name)
			assert.NoError(t, err, name)
		}
	})

	t.Run("template", func(t *testing.T) {
		msg := &EmailMessage{
			To:           []mail.Address{{Address: "direction@ftf.tn"}},
			TemplateName: "excuse_digest",
			TemplateData: map[string]interface{}{
				"Period":       "À venir",
				"Date":         "2024-01-22",
				"Counts":       map[string]int{"all": 7, "past": 1, "ongoing": 2, "upcoming": 4},
				"Excuses":      []map[string]string{},
				"UsedFallback": true,
			},
		}
		require.NoError(t, msg.Render("Arbitres"))

		assert.Contains(t, msg.TextContent, "Excuses des arbitres (À venir, au 2024-01-22)")
		assert.Contains(t, msg.TextContent, "Toutes: 7 | Passées: 1 | En cours: 2 | À venir: 4")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(msg.TextContent), "Arbitres - Direction de l'arbitrage"))
		assert.Contains(t, msg.HTMLContent, "<title>Arbitres</title>")
		assert.Contains(t, msg.HTMLContent, "données de démonstration")
		assert.True(t, msg.HasContent())
	})

	t.Run("plain body", func(t *testing.T) {
		msg := &EmailMessage{BodyStr: "hello"}
		require.NoError(t, msg.Render("Arbitres"))
		assert.Equal(t, "hello", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
	})
}
