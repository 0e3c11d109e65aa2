// Package suggest asks a hosted model to propose hospital system requirements
// from a short free-text description.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
)

const (
	model        = "llama-3.1-70b-versatile"
	systemPrompt = "You are a healthcare IT consultant specializing in hospital management systems. Always respond with valid JSON format as requested. Focus on healthcare workflows, compliance, and medical industry best practices."
)

const promptTemplate = `Based on this hospital management system description: %q

Please provide suggestions for a hospital management system in the following JSON format:
{
  "hospitalName": "suggested hospital/clinic name if not provided",
  "hospitalType": "general|specialty|clinic|emergency|rehabilitation|maternity",
  "description": "improved system description with specific healthcare requirements",
  "hospitalSize": "small|medium|large|enterprise",
  "budget": "suggested implementation budget range",
  "timeline": "suggested implementation timeline",
  "complianceRequirements": "healthcare compliance requirements (HIPAA, HITECH, etc.)",
  "systemArchitecture": "cloud|onpremise|hybrid|saas|microservices",
  "implementationApproach": "phased|bigbang|pilot|parallel|modular",
  "patientCapacity": "suggested daily patient capacity",
  "departmentCount": "estimated number of departments",
  "staffSize": "estimated total staff size",
  "suggestions": "detailed explanation and recommendations for the hospital management system"
}

Focus on healthcare-specific requirements, workflows, compliance needs, and integration with medical devices. Consider scalability for different hospital sizes and regulatory requirements. Be specific and practical for healthcare environments.`

// Suggestion holds the proposed values; any field may be empty
type Suggestion struct {
	HospitalName           string `json:"hospitalName,omitempty"`
	HospitalType           string `json:"hospitalType,omitempty"`
	Description            string `json:"description,omitempty"`
	HospitalSize           string `json:"hospitalSize,omitempty"`
	Budget                 string `json:"budget,omitempty"`
	Timeline               string `json:"timeline,omitempty"`
	ComplianceRequirements string `json:"complianceRequirements,omitempty"`
	SystemArchitecture     string `json:"systemArchitecture,omitempty"`
	ImplementationApproach string `json:"implementationApproach,omitempty"`
	PatientCapacity        string `json:"patientCapacity,omitempty"`
	DepartmentCount        string `json:"departmentCount,omitempty"`
	StaffSize              string `json:"staffSize,omitempty"`
	Suggestions            string `json:"suggestions"`
}

type chatClient interface {
	Chat(ctx context.Context, apiKey string, messages []llm.Message, opts llm.ChatOptions) (string, error)
}

// Assistant produces hospital requirement suggestions
type Assistant struct {
	client chatClient
	logger *zap.Logger
}

func NewAssistant(client *llm.GroqClient, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{client: client, logger: logger}
}

// Suggest returns parsed suggestions, or the raw reply in Suggestions when the
// model did not answer with a JSON object
func (a *Assistant) Suggest(ctx context.Context, description, apiKey string) (*Suggestion, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrMissingAPIKey
	}

	content, err := a.client.Chat(ctx, apiKey, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(promptTemplate, description)},
	}, llm.ChatOptions{Model: model, Temperature: 0.7, MaxTokens: 1000})
	if err != nil {
		return nil, fmt.Errorf("hospital suggestions: %w", err)
	}

	if obj, ok := firstObject(content); ok {
		var s Suggestion
		if err := json.Unmarshal([]byte(obj), &s); err == nil {
			return &s, nil
		}
		a.logger.Warn("suggestion reply was not valid JSON")
	}
	return &Suggestion{Suggestions: content}, nil
}

// firstObject returns the span from the first '{' to the last '}'
func firstObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
