package excuse

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/mail"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/period"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Demo()[:2]))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"1", "Ahmed", "Ben Ali", "Ligue 1", "2024-01-15", "2024-01-20",
		"Maladie avec certificat médical", "Acceptée", "certificat_medical_ahmed.pdf", "2024-01-14",
	}, rows[1])
}

type mailBox struct {
	mu   sync.Mutex
	sent []*core.EmailMessage
}

func (m *mailBox) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, messages...)
}

func TestService_Notify(t *testing.T) {
	box := new(mailBox)
	svc, _, _ := newTestService(&fakeRepo{errs: map[period.Bucket]error{
		period.All: errNet, period.Past: errNet, period.Ongoing: errNet, period.Upcoming: errNet,
	}})
	svc.mailSvc = box

	to := []mail.Address{{Name: "Direction", Address: "arbitrage@ftf.tn"}}

	_, err := svc.Notify(context.Background(), Query{}, nil)
	assert.Equal(t, ErrNoRecipients, err)

	view, err := svc.Notify(context.Background(), Query{Period: "upcoming", Date: "2024-01-22"}, to)
	require.NoError(t, err)
	assert.Len(t, view.Excuses, 4)

	require.Len(t, box.sent, 1)
	msg := box.sent[0]
	assert.Equal(t, to, msg.To)
	assert.Equal(t, "Excuses des arbitres - À venir - 2024-01-22 (démo)", msg.Subject)

	// rendered before being handed to the email service
	assert.Contains(t, msg.TextContent, "Salah Ben Youssef")
	assert.Contains(t, msg.TextContent, "Arbitres - Direction de l'arbitrage")
	assert.Contains(t, msg.HTMLContent, "<!DOCTYPE html>")
	assert.Contains(t, msg.TextContent, "données de démonstration")
	assert.Contains(t, msg.HTMLContent, "Nadia Ben Amor")
	assert.NotContains(t, msg.TextContent, "Fatma Khelil")
}
