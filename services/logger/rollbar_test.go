package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", TestMode: true})

	adm := account.Admin{ID: 7, Email: "admin@ftf.tn", FullName: "Admin FTF", IsStaff: true}
	logger.Warn("excuses: backend unavailable", errors.New("connection refused"), adm)

	out := buf.String()
	assert.Contains(t, out, "WARN: excuses: backend unavailable")
	assert.Contains(t, out, "connection refused")
	assert.NotContains(t, out, "admin@ftf.tn")

	args := logger.prepare("msg", []interface{}{adm, map[string]interface{}{"k": 1}})
	assert.Equal(t, []interface{}{"msg", map[string]interface{}{"k": 1}}, args)
}
