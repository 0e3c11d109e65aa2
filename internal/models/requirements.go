package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Domain discriminates the requirement variants a submission can carry
type Domain string

const (
	DomainGeneric    Domain = "generic"
	DomainHealthcare Domain = "healthcare"
)

// StringList is a list field that also accepts a single JSON string on input
type StringList []string

// UnmarshalJSON accepts null, a string, or an array of strings
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}
	*l = items
	return nil
}

// HealthcareProfile holds the hospital-management specific fields
type HealthcareProfile struct {
	HospitalType           string `json:"hospitalType,omitempty" yaml:"hospitalType,omitempty"`
	ComplianceRequirements string `json:"complianceRequirements,omitempty" yaml:"complianceRequirements,omitempty"`
	SystemArchitecture     string `json:"systemArchitecture,omitempty" yaml:"systemArchitecture,omitempty"`
	ImplementationApproach string `json:"implementationApproach,omitempty" yaml:"implementationApproach,omitempty"`
	PatientCapacity        string `json:"patientCapacity,omitempty" yaml:"patientCapacity,omitempty"`
	DepartmentCount        string `json:"departmentCount,omitempty" yaml:"departmentCount,omitempty"`
	StaffSize              string `json:"staffSize,omitempty" yaml:"staffSize,omitempty"`
}

// ProjectRequirements describes a project or facility and its constraints.
// Every observed form variant decodes into this one type; Domain selects
// which extras are meaningful.
type ProjectRequirements struct {
	Domain Domain `json:"domain" yaml:"domain"`

	ProjectName            string     `json:"projectName" yaml:"projectName"`
	ProjectType            string     `json:"projectType" yaml:"projectType"`
	Description            string     `json:"description" yaml:"description"`
	Scale                  string     `json:"scale,omitempty" yaml:"scale,omitempty"`
	Size                   string     `json:"size,omitempty" yaml:"size,omitempty"`
	Budget                 string     `json:"budget,omitempty" yaml:"budget,omitempty"`
	Timeline               string     `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Security               string     `json:"security,omitempty" yaml:"security,omitempty"`
	Features               StringList `json:"features,omitempty" yaml:"features,omitempty"`
	AdditionalRequirements string     `json:"additionalRequirements,omitempty" yaml:"additionalRequirements,omitempty"`

	// Generic requirements form
	UserRoles              StringList `json:"userRoles,omitempty" yaml:"userRoles,omitempty"`
	CoreProcesses          StringList `json:"coreProcesses,omitempty" yaml:"coreProcesses,omitempty"`
	BusinessLogic          StringList `json:"businessLogic,omitempty" yaml:"businessLogic,omitempty"`
	ExpectedUsers          string     `json:"expectedUsers,omitempty" yaml:"expectedUsers,omitempty"`
	PerformanceNeeds       StringList `json:"performanceNeeds,omitempty" yaml:"performanceNeeds,omitempty"`
	SecurityRequirements   StringList `json:"securityRequirements,omitempty" yaml:"securityRequirements,omitempty"`
	ComplianceRequirements StringList `json:"complianceRequirements,omitempty" yaml:"complianceRequirements,omitempty"`
	DeploymentType         string     `json:"deploymentType,omitempty" yaml:"deploymentType,omitempty"`
	DeploymentRegion       string     `json:"deploymentRegion,omitempty" yaml:"deploymentRegion,omitempty"`
	CICDRequired           string     `json:"cicdRequired,omitempty" yaml:"cicdRequired,omitempty"`
	ProjectApproach        string     `json:"projectApproach,omitempty" yaml:"projectApproach,omitempty"`
	DevelopmentMethodology string     `json:"developmentMethodology,omitempty" yaml:"developmentMethodology,omitempty"`

	Healthcare *HealthcareProfile `json:"healthcare,omitempty" yaml:"healthcare,omitempty"`

	// Extra keeps keys no variant knows about
	Extra map[string]StringList `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// knownKeys lists every top-level key consumed by UnmarshalJSON
var knownKeys = map[string]bool{
	"domain": true, "projectName": true, "projectType": true, "description": true,
	"scale": true, "size": true, "budget": true, "timeline": true, "security": true,
	"features": true, "additionalRequirements": true, "userRoles": true,
	"coreProcesses": true, "businessLogic": true, "expectedUsers": true,
	"performanceNeeds": true, "securityRequirements": true, "complianceRequirements": true,
	"deploymentType": true, "deploymentRegion": true, "cicdRequired": true,
	"projectApproach": true, "developmentMethodology": true, "healthcare": true,
	"extra": true,
	// aliases
	"scalability": true, "timeConstraints": true, "customRequirements": true,
	"hospitalName": true, "hospitalType": true, "hospitalSize": true,
	"systemArchitecture": true, "implementationApproach": true,
	"patientCapacity": true, "departmentCount": true, "staffSize": true,
	"techRestrictions": true, "hardwareConstraints": true,
	"stakeholders": true, "topPriorities": true, "risksToAvoid": true,
	"usabilityNeeds": true,
}

// UnmarshalJSON decodes canonical keys, then fills empty fields from the
// alias keys used by the older form variants.
func (r *ProjectRequirements) UnmarshalJSON(data []byte) error {
	type canonical ProjectRequirements
	var c canonical
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	var a struct {
		Scalability            string     `json:"scalability"`
		TimeConstraints        string     `json:"timeConstraints"`
		CustomRequirements     string     `json:"customRequirements"`
		HospitalName           string     `json:"hospitalName"`
		HospitalType           string     `json:"hospitalType"`
		HospitalSize           string     `json:"hospitalSize"`
		SystemArchitecture     string     `json:"systemArchitecture"`
		ImplementationApproach string     `json:"implementationApproach"`
		PatientCapacity        string     `json:"patientCapacity"`
		DepartmentCount        string     `json:"departmentCount"`
		StaffSize              string     `json:"staffSize"`
		TechRestrictions       string     `json:"techRestrictions"`
		HardwareConstraints    string     `json:"hardwareConstraints"`
		Stakeholders           StringList `json:"stakeholders"`
		TopPriorities          StringList `json:"topPriorities"`
		RisksToAvoid           StringList `json:"risksToAvoid"`
		UsabilityNeeds         StringList `json:"usabilityNeeds"`
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*r = ProjectRequirements(c)

	fillString(&r.Scale, a.Scalability)
	fillString(&r.Timeline, a.TimeConstraints)
	fillString(&r.AdditionalRequirements, a.CustomRequirements)
	fillString(&r.ProjectName, a.HospitalName)
	fillString(&r.ProjectType, a.HospitalType)
	fillString(&r.Size, a.HospitalSize)

	hospital := HealthcareProfile{
		HospitalType:           a.HospitalType,
		SystemArchitecture:     a.SystemArchitecture,
		ImplementationApproach: a.ImplementationApproach,
		PatientCapacity:        a.PatientCapacity,
		DepartmentCount:        a.DepartmentCount,
		StaffSize:              a.StaffSize,
	}
	hospitalKeys := a.HospitalName != "" || a.HospitalSize != "" || hospital != (HealthcareProfile{})
	if hospitalKeys {
		if r.Healthcare == nil {
			r.Healthcare = &HealthcareProfile{}
		}
		fillString(&r.Healthcare.HospitalType, hospital.HospitalType)
		fillString(&r.Healthcare.SystemArchitecture, hospital.SystemArchitecture)
		fillString(&r.Healthcare.ImplementationApproach, hospital.ImplementationApproach)
		fillString(&r.Healthcare.PatientCapacity, hospital.PatientCapacity)
		fillString(&r.Healthcare.DepartmentCount, hospital.DepartmentCount)
		fillString(&r.Healthcare.StaffSize, hospital.StaffSize)
		if r.Healthcare.ComplianceRequirements == "" && len(r.ComplianceRequirements) > 0 {
			r.Healthcare.ComplianceRequirements = strings.Join(r.ComplianceRequirements, ", ")
		}
	}

	if r.Domain == "" {
		r.Domain = DomainGeneric
		if hospitalKeys || r.Healthcare != nil {
			r.Domain = DomainHealthcare
		}
	}

	// Keys the form collects but nothing downstream reads are kept as extras.
	loose := map[string]StringList{
		"techRestrictions":    listOf(a.TechRestrictions),
		"hardwareConstraints": listOf(a.HardwareConstraints),
		"stakeholders":        a.Stakeholders,
		"topPriorities":       a.TopPriorities,
		"risksToAvoid":        a.RisksToAvoid,
		"usabilityNeeds":      a.UsabilityNeeds,
	}
	for k, v := range loose {
		if len(v) > 0 {
			r.setExtra(k, v)
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		var l StringList
		if err := json.Unmarshal(v, &l); err != nil {
			// non string values are not part of the model
			continue
		}
		if len(l) > 0 {
			r.setExtra(k, l)
		}
	}
	return nil
}

func (r *ProjectRequirements) setExtra(key string, v StringList) {
	if r.Extra == nil {
		r.Extra = make(map[string]StringList)
	}
	if _, exists := r.Extra[key]; !exists {
		r.Extra[key] = v
	}
}

func fillString(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func listOf(s string) StringList {
	if s == "" {
		return nil
	}
	return StringList{s}
}

// EffectiveScale returns the normalized scale, or the normalized size when
// no scale was given.
func (r ProjectRequirements) EffectiveScale() string {
	if s := normalize(r.Scale); s != "" {
		return s
	}
	return normalize(r.Size)
}

// HasFeature reports whether a feature matches name once case, spaces,
// hyphens and underscores are ignored.
func (r ProjectRequirements) HasFeature(name string) bool {
	want := compact(name)
	for _, f := range r.Features {
		if compact(f) == want {
			return true
		}
	}
	return false
}

// IsHealthcare reports whether the healthcare variant applies
func (r ProjectRequirements) IsHealthcare() bool {
	return r.Domain == DomainHealthcare
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func compact(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalize(s))
}

// FieldError names one field that failed validation
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failing field of a submission
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid requirements: " + strings.Join(parts, "; ")
}

// Validate checks presence and minimum lengths only
func (r ProjectRequirements) Validate() error {
	var fields []FieldError
	if len(strings.TrimSpace(r.ProjectName)) < 2 {
		fields = append(fields, FieldError{Field: "projectName", Message: "Project name is required"})
	}
	if strings.TrimSpace(r.ProjectType) == "" {
		fields = append(fields, FieldError{Field: "projectType", Message: "Project type is required"})
	}
	if len(strings.TrimSpace(r.Description)) < 10 {
		fields = append(fields, FieldError{Field: "description", Message: "Please provide a more detailed description"})
	}
	switch r.Domain {
	case DomainGeneric, DomainHealthcare:
	default:
		fields = append(fields, FieldError{Field: "domain", Message: fmt.Sprintf("unknown domain %q", r.Domain)})
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &ValidationError{Fields: fields}
}
