package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Priority levels attached to every decision.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityNormal   = "normal"
)

// App actions the client understands.
const (
	ActionNone          = "none"
	ActionDialEmergency = "marcar_911"
)

// DecisionRequest is one incoming emergency report.
type DecisionRequest struct {
	Text     string            `json:"texto,omitempty"`
	Location *Coordinate       `json:"ubicacion,omitempty"`
	Profile  *EmergencyProfile `json:"perfil,omitempty"`
	Panic    bool              `json:"panic,omitempty"`
}

// Validate checks the optional request fields. The panic flag is exempt:
// a panic request short-circuits before validation so it dominates even
// contradictory or malformed input.
func (r DecisionRequest) Validate() error {
	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			return err
		}
	}
	if r.Profile != nil {
		if err := r.Profile.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DecisionMetadata carries the partial signals that produced a decision.
// Fields stay absent when the corresponding stage did not run or degraded.
type DecisionMetadata struct {
	Intent           string         `json:"intent,omitempty"`
	IntentConfidence float64        `json:"confianza_intent,omitempty"`
	EmergencyType    *string        `json:"tipo_emergencia,omitempty"`
	NearestFacility  *FacilityMatch `json:"instalacion_cercana,omitempty"`
	Recommendations  []string       `json:"recomendaciones,omitempty"`
	Priority         string         `json:"priority"`
	PanicMode        bool           `json:"panic_mode,omitempty"`
}

// Decision is the single actionable output produced per request.
// VoiceText always mirrors ResponseText: one source of truth for both the
// textual and the spoken channel.
type Decision struct {
	ID           string           `json:"id"`
	ResponseText string           `json:"respuesta_texto"`
	AppAction    string           `json:"accion_app"`
	VoiceText    string           `json:"respuesta_voz_texto"`
	Metadata     DecisionMetadata `json:"metadata"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewDecisionID produces a deterministic short ID from the request's key
// fields and the creation instant. Deterministic IDs keep the audit trail
// replay-safe: re-publishing the same decision produces the same key.
func NewDecisionID(req DecisionRequest, createdAt time.Time) string {
	lat, lon := 0.0, 0.0
	if req.Location != nil {
		lat, lon = req.Location.Lat, req.Location.Lon
	}
	input := fmt.Sprintf("%s|%.4f|%.4f|%t|%d", req.Text, lat, lon, req.Panic, createdAt.UnixNano())
	hash := sha256.Sum256([]byte(input))
	return "dec-" + hex.EncodeToString(hash[:8])
}
