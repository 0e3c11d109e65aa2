package models

// BackendRequest matches the request body accepted by the AI backend's /execute endpoint
type BackendRequest struct {
	UserIdea               string   `json:"user_idea"`
	ProjectType            string   `json:"project_type"`
	ProjectDescription     string   `json:"project_description"`
	Scale                  string   `json:"scale"`
	Budget                 string   `json:"budget"`
	ProjectDuration        int      `json:"project_duration"`
	SecurityRequirements   string   `json:"security_requirements"`
	KeyFeatures            []string `json:"key_features"`
	AdditionalRequirements string   `json:"additional_requirements"`

	// Healthcare only
	Domain                 string `json:"domain,omitempty"`
	HospitalType           string `json:"hospital_type,omitempty"`
	ComplianceRequirements string `json:"compliance_requirements,omitempty"`
	SystemArchitecture     string `json:"system_architecture,omitempty"`
	ImplementationApproach string `json:"implementation_approach,omitempty"`
	PatientCapacity        string `json:"patient_capacity,omitempty"`
	DepartmentCount        string `json:"department_count,omitempty"`
	StaffSize              string `json:"staff_size,omitempty"`
}

// BackendResponse matches the /execute response body
type BackendResponse struct {
	Architecture string `json:"architecture"`
	UMLCode      string `json:"uml_code,omitempty"`
	ImageData    string `json:"image_data,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
}

// BackendErrorBody covers the error shapes the backend is known to return
type BackendErrorBody struct {
	Detail       string `json:"detail,omitempty"`
	Error        string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"`
	Architecture string `json:"architecture,omitempty"`
	UMLCode      string `json:"uml_code,omitempty"`
}

// Text returns the first non-empty message field
func (b BackendErrorBody) Text() string {
	switch {
	case b.Detail != "":
		return b.Detail
	case b.Error != "":
		return b.Error
	default:
		return b.Message
	}
}
