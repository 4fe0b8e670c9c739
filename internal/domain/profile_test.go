package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile EmergencyProfile
		wantErr bool
	}{
		{"valid elderly profile", EmergencyProfile{Age: 72, HasAllergies: true, HasChronicCondition: true, TakesMedication: true, BloodType: "O+"}, false},
		{"newborn", EmergencyProfile{Age: 0, BloodType: "AB-"}, false},
		{"upper age bound", EmergencyProfile{Age: 120, BloodType: "B+"}, false},
		{"negative age", EmergencyProfile{Age: -1, BloodType: "O+"}, true},
		{"age too high", EmergencyProfile{Age: 121, BloodType: "O+"}, true},
		{"unknown blood type", EmergencyProfile{Age: 30, BloodType: "C+"}, true},
		{"empty blood type", EmergencyProfile{Age: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmergencyProfileFeatureVector(t *testing.T) {
	p := EmergencyProfile{
		Age:                 72,
		HasAllergies:        true,
		HasChronicCondition: true,
		TakesMedication:     true,
		BloodType:           "O+",
	}

	features := p.FeatureVector()

	require.Len(t, features, 12)
	assert.Equal(t, 72.0, features[0])
	assert.Equal(t, []float64{1, 1, 1}, features[1:4])
	// One-hot blood group: O+ is the first slot.
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0, 0}, features[4:])
}

func TestEmergencyProfileFeatureVector_BloodTypeOrder(t *testing.T) {
	// Each blood group must light exactly its own slot, in declaration order.
	for i, bt := range BloodTypes {
		p := EmergencyProfile{Age: 30, BloodType: bt}
		features := p.FeatureVector()

		oneHot := features[4:]
		for j, v := range oneHot {
			if j == i {
				assert.Equal(t, 1.0, v, "blood type %s slot %d", bt, j)
			} else {
				assert.Equal(t, 0.0, v, "blood type %s slot %d", bt, j)
			}
		}
	}
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, Coordinate{Lat: 24.0277, Lon: -104.6532}.Validate())
	assert.NoError(t, Coordinate{Lat: -90, Lon: 180}.Validate())
	assert.ErrorIs(t, Coordinate{Lat: 90.01, Lon: 0}.Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, Coordinate{Lat: 0, Lon: -180.5}.Validate(), ErrInvalidRequest)
}

func TestFacilityTypeValid(t *testing.T) {
	for _, ft := range FacilityTypes {
		assert.True(t, ft.Valid(), "type %s", ft)
	}
	assert.False(t, FacilityType("escuela").Valid())
	assert.False(t, FacilityType("").Valid())
}
