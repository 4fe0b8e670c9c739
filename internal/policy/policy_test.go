package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

const validPolicy = `
default_action: none
default_response: "¿Puedes darme más detalles?"
intents:
  saludo:
    action: none
    response: "¡Hola! ¿En qué puedo ayudarte?"
  informacion_emergencia:
    action: abrir_mapa
    response: "Entendido, estoy analizando tu emergencia."
    trigger_emergency: true
emergencies:
  medica:
    facility_type: hospital
    action: abrir_mapa_hospital
    response: "Mantén la calma, el hospital más cercano está en camino."
  violencia:
    facility_type: policia
    action: abrir_mapa_policia
    response: "Busca un lugar seguro, contactando a la policía."
  otra:
    action: none
    response: "Describe mejor la situación, por favor."
profiles:
  alerta_medica_critica:
    recommendations:
      - "Mantén tus medicamentos a la mano"
      - "Informa tu tipo de sangre al personal médico"
`

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writePolicy(t, validPolicy))
	require.NoError(t, err)

	// Threshold defaults when unset.
	assert.Equal(t, 0.7, p.ConfidenceThreshold)

	rule := p.IntentRuleFor("informacion_emergencia")
	assert.True(t, rule.TriggerEmergency)
	assert.Equal(t, "abrir_mapa", rule.Action)

	em, ok := p.EmergencyRuleFor("violencia")
	require.True(t, ok)
	assert.Equal(t, domain.FacilityPoliceStation, em.FacilityType)

	_, ok = p.EmergencyRuleFor("desconocida")
	assert.False(t, ok)

	recs := p.RecommendationsFor("alerta_medica_critica")
	assert.Len(t, recs, 2)
	assert.Nil(t, p.RecommendationsFor("sin_plantilla"))
}

func TestLoad_UnmappedIntentFallsBack(t *testing.T) {
	p, err := Load(writePolicy(t, validPolicy))
	require.NoError(t, err)

	rule := p.IntentRuleFor("intent_inexistente")
	assert.Equal(t, domain.ActionNone, rule.Action)
	assert.Equal(t, "¿Puedes darme más detalles?", rule.Response)
	assert.False(t, rule.TriggerEmergency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file handled separately", ""},
		{"threshold above one", "confidence_threshold: 1.5\n" + validPolicy},
		{"no intents", `
default_response: x
emergencies:
  medica: {action: a, response: r}
`},
		{"no emergencies", `
default_response: x
intents:
  saludo: {action: a, response: r}
`},
		{"bad facility type", `
default_response: x
intents:
  saludo: {action: a, response: r}
emergencies:
  medica: {facility_type: escuela, action: a, response: r}
`},
		{"malformed yaml", "intents: [}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.content == "" {
				_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
				require.Error(t, err)
				return
			}
			_, err := Load(writePolicy(t, tt.content))
			require.Error(t, err)
		})
	}
}
