package mail

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connect-inmobiliaria/crm-service/internal/config"
)

func TestValuationTemplateEscapesMarkup(t *testing.T) {
	var rendered bytes.Buffer
	err := valuationTemplate.Execute(&rendered, valuationData{
		Name: "Ana <script>alert(1)</script>",
		Body: "Rango estimado: USD 90.000 <b>a</b> 110.000",
	})
	require.NoError(t, err)

	out := rendered.String()
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "Connect Inmobiliaria, Córdoba")
}

func TestSendValuationReportRequiresHost(t *testing.T) {
	sender := NewEmailSender(config.MailConfig{})
	err := sender.SendValuationReport("ana@example.com", "Ana", "cuerpo")
	assert.Error(t, err)
}
