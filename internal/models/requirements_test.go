package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalGenericForm(t *testing.T) {
	raw := `{
		"projectName": "Shop",
		"projectType": "webapp",
		"description": "An online shop for books",
		"scalability": "medium",
		"timeConstraints": "6 months",
		"features": ["auth", "payments"],
		"securityRequirements": "encryption",
		"customRequirements": "dark mode"
	}`

	var r ProjectRequirements
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, DomainGeneric, r.Domain)
	assert.Equal(t, "medium", r.Scale)
	assert.Equal(t, "6 months", r.Timeline)
	assert.Equal(t, "dark mode", r.AdditionalRequirements)
	assert.Equal(t, StringList{"auth", "payments"}, r.Features)
	assert.Equal(t, StringList{"encryption"}, r.SecurityRequirements)
	assert.Nil(t, r.Healthcare)
}

func TestUnmarshalHospitalForm(t *testing.T) {
	raw := `{
		"hospitalName": "St. Mary",
		"hospitalType": "general",
		"hospitalSize": "large",
		"description": "Regional hospital with emergency care",
		"patientCapacity": "500",
		"complianceRequirements": ["HIPAA"],
		"stakeholders": ["doctors", "nurses"]
	}`

	var r ProjectRequirements
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, DomainHealthcare, r.Domain)
	assert.Equal(t, "St. Mary", r.ProjectName)
	assert.Equal(t, "general", r.ProjectType)
	assert.Equal(t, "large", r.Size)
	require.NotNil(t, r.Healthcare)
	assert.Equal(t, "general", r.Healthcare.HospitalType)
	assert.Equal(t, "500", r.Healthcare.PatientCapacity)
	assert.Equal(t, "HIPAA", r.Healthcare.ComplianceRequirements)
	assert.Equal(t, StringList{"doctors", "nurses"}, r.Extra["stakeholders"])
}

func TestCanonicalKeysWinOverAliases(t *testing.T) {
	raw := `{"projectName":"A","scale":"small","scalability":"enterprise","mood":"calm"}`

	var r ProjectRequirements
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "small", r.Scale)
	assert.Equal(t, StringList{"calm"}, r.Extra["mood"])
}

func TestRoundTripIsIdentity(t *testing.T) {
	original := ProjectRequirements{
		Domain:      DomainHealthcare,
		ProjectName: "Clinic",
		ProjectType: "clinic",
		Description: "Outpatient clinic scheduling",
		Size:        "small",
		Features:    StringList{"appointments", "real-time"},
		Healthcare: &HealthcareProfile{
			HospitalType:           "clinic",
			ComplianceRequirements: "HIPAA",
		},
		Extra: map[string]StringList{"topPriorities": {"speed"}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ProjectRequirements
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestStringListAcceptsString(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`"one"`), &l))
	assert.Equal(t, StringList{"one"}, l)

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Nil(t, l)

	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestValidate(t *testing.T) {
	valid := ProjectRequirements{
		Domain:      DomainGeneric,
		ProjectName: "Shop",
		ProjectType: "webapp",
		Description: "An online shop for books",
	}
	assert.NoError(t, valid.Validate())

	invalid := ProjectRequirements{Domain: "finance", ProjectName: "S", Description: "short"}
	err := invalid.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"description", "domain", "projectName", "projectType"}, fields)
}

func TestHasFeatureAndEffectiveScale(t *testing.T) {
	r := ProjectRequirements{Features: StringList{"Real_Time"}, Size: " Enterprise "}
	assert.True(t, r.HasFeature("realtime"))
	assert.False(t, r.HasFeature("payments"))
	assert.Equal(t, "enterprise", r.EffectiveScale())

	r.Scale = "Medium"
	assert.Equal(t, "medium", r.EffectiveScale())
}
