// Package adapter projects ProjectRequirements onto the AI backend's request contract.
package adapter

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Defaults substituted for missing optional fields
const (
	DefaultDescription            = "No description provided"
	DefaultBudget                 = "Not specified"
	DefaultSecurity               = "Standard security measures"
	DefaultAdditionalRequirements = "None"
	DefaultDurationMonths         = 3
)

// maxDurationMonths bounds parsed timelines; larger values are treated as unparseable
const maxDurationMonths = 1200

var scaleLabels = map[string]string{
	"low":        "Small (Hundreds of users)",
	"small":      "Small (Hundreds of users)",
	"medium":     "Medium (Thousands of users)",
	"high":       "Large (Millions of users)",
	"large":      "Large (Millions of users)",
	"enterprise": "Enterprise (Global scale)",
}

var durationPattern = regexp.MustCompile(`\d+`)

// Adapter converts requirements into backend requests
type Adapter struct {
	logger *zap.Logger
}

// New creates an Adapter. A nil logger disables diagnostics.
func New(logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{logger: logger}
}

// ToBackendRequest fills every field the backend requires, substituting
// defaults where the requirements are silent. It never fails.
func (a *Adapter) ToBackendRequest(req models.ProjectRequirements) models.BackendRequest {
	out := models.BackendRequest{
		UserIdea:               strings.TrimSpace(req.ProjectName),
		ProjectType:            strings.TrimSpace(req.ProjectType),
		ProjectDescription:     orDefault(req.Description, DefaultDescription),
		Scale:                  a.mapScale(req),
		Budget:                 orDefault(req.Budget, DefaultBudget),
		ProjectDuration:        ParseDuration(req.Timeline),
		SecurityRequirements:   orDefault(securityText(req), DefaultSecurity),
		KeyFeatures:            features(req.Features),
		AdditionalRequirements: orDefault(req.AdditionalRequirements, DefaultAdditionalRequirements),
	}

	if req.IsHealthcare() {
		out.Domain = string(models.DomainHealthcare)
		if h := req.Healthcare; h != nil {
			out.HospitalType = h.HospitalType
			out.ComplianceRequirements = h.ComplianceRequirements
			out.SystemArchitecture = h.SystemArchitecture
			out.ImplementationApproach = h.ImplementationApproach
			out.PatientCapacity = h.PatientCapacity
			out.DepartmentCount = h.DepartmentCount
			out.StaffSize = h.StaffSize
		}
		if out.HospitalType == "" {
			out.HospitalType = out.ProjectType
		}
		if out.ComplianceRequirements == "" && len(req.ComplianceRequirements) > 0 {
			out.ComplianceRequirements = strings.Join(req.ComplianceRequirements, ", ")
		}
	}
	return out
}

// mapScale looks the scale (or size for healthcare) up in the display table.
// Unknown values pass through unchanged.
func (a *Adapter) mapScale(req models.ProjectRequirements) string {
	value := strings.TrimSpace(req.Scale)
	field := "scale"
	if value == "" && req.IsHealthcare() {
		value = strings.TrimSpace(req.Size)
		field = "size"
	}
	if value == "" {
		return ""
	}
	if label, ok := scaleLabels[strings.ToLower(value)]; ok {
		return label
	}
	a.logger.Warn("Unmapped scale value passed through",
		zap.String("field", field),
		zap.String("value", value),
	)
	return value
}

// ParseDuration extracts a month count from free text such as "6 months",
// "2 years" or "10 weeks". Anything unparseable yields the default.
func ParseDuration(text string) int {
	match := durationPattern.FindString(text)
	if match == "" {
		return DefaultDurationMonths
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 || n > maxDurationMonths*5 {
		return DefaultDurationMonths
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "year"):
		n *= 12
	case strings.Contains(lower, "week"):
		n = (n + 3) / 4
	}
	if n < 1 || n > maxDurationMonths {
		return DefaultDurationMonths
	}
	return n
}

// ScaleLabel returns the display label for a scale value and whether it was mapped
func ScaleLabel(value string) (string, bool) {
	label, ok := scaleLabels[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return value, false
	}
	return label, true
}

func securityText(req models.ProjectRequirements) string {
	if s := strings.TrimSpace(req.Security); s != "" {
		return s
	}
	return strings.Join(req.SecurityRequirements, ", ")
}

func features(list models.StringList) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
