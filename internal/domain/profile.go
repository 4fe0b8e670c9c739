package domain

import "fmt"

// BloodType is one of the eight ABO/Rh blood groups.
type BloodType string

// BloodTypes lists the valid blood groups in model feature order. The order
// defines the one-hot encoding and must not change.
var BloodTypes = []BloodType{"O+", "O-", "A+", "A-", "B+", "B-", "AB+", "AB-"}

// Valid reports whether b is a known blood group.
func (b BloodType) Valid() bool {
	for _, bt := range BloodTypes {
		if b == bt {
			return true
		}
	}
	return false
}

// EmergencyProfile is an optional per-request medical profile.
type EmergencyProfile struct {
	Age                 int       `json:"edad"`
	HasAllergies        bool      `json:"tiene_alergias"`
	HasChronicCondition bool      `json:"condicion_cronica"`
	TakesMedication     bool      `json:"toma_medicamentos"`
	BloodType           BloodType `json:"tipo_sangre"`
}

// Validate checks profile value ranges.
func (p EmergencyProfile) Validate() error {
	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("%w: age %d outside [0, 120]", ErrInvalidRequest, p.Age)
	}
	if !p.BloodType.Valid() {
		return fmt.Errorf("%w: unknown blood type %q", ErrInvalidRequest, p.BloodType)
	}
	return nil
}

// FeatureVector encodes the profile as the fixed-order numeric vector the
// profile-action model was trained on: age, three 0/1 flags, then a one-hot
// blood group over [BloodTypes].
func (p EmergencyProfile) FeatureVector() []float64 {
	features := make([]float64, 0, 4+len(BloodTypes))
	features = append(features,
		float64(p.Age),
		boolFeature(p.HasAllergies),
		boolFeature(p.HasChronicCondition),
		boolFeature(p.TakesMedication),
	)
	for _, bt := range BloodTypes {
		features = append(features, boolFeature(p.BloodType == bt))
	}
	return features
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
