// Package analysis derives recommendation fields from architecture text and
// from requirements using keyword heuristics and static tables.
package analysis

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Pattern labels
const (
	PatternMicroservices = "Microservices"
	PatternMonolithic    = "Monolithic"
	PatternServerless    = "Serverless"
	PatternLayered       = "Layered Architecture"
	PatternEventDriven   = "Event-Driven Architecture"
	PatternCustom        = "Custom Architecture"
)

// Engine extracts structure from the backend's free-text architecture
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ExtractPattern picks the first pattern keyword found in the text
func (e *Engine) ExtractPattern(architecture string) string {
	lower := strings.ToLower(architecture)
	switch {
	case strings.Contains(lower, "microservice"):
		return PatternMicroservices
	case strings.Contains(lower, "monolith"):
		return PatternMonolithic
	case strings.Contains(lower, "serverless"):
		return PatternServerless
	case strings.Contains(lower, "layered"):
		return PatternLayered
	case strings.Contains(lower, "event-driven"), strings.Contains(lower, "event driven"):
		return PatternEventDriven
	}
	return PatternCustom
}

// keywordFrameworks maps a keyword in architecture text to a framework
var keywordFrameworks = []struct {
	keyword   string
	framework models.Framework
}{
	{"react", models.Framework{Name: "React", Description: "Frontend framework for building user interfaces", URL: "https://reactjs.org/", Popularity: 95}},
	{"node", models.Framework{Name: "Node.js", Description: "JavaScript runtime for backend development", URL: "https://nodejs.org/", Popularity: 90}},
	{"python", models.Framework{Name: "Python", Description: "Backend programming language", URL: "https://python.org/", Popularity: 88}},
	{"database", models.Framework{Name: "Database", Description: "Data storage and management system", URL: "https://www.postgresql.org/", Popularity: 85}},
}

// ExtractFrameworks lists frameworks mentioned in the text, or a generic
// web framework and database when nothing matches
func (e *Engine) ExtractFrameworks(architecture string) []models.Framework {
	lower := strings.ToLower(architecture)
	frameworks := []models.Framework{}
	for _, kf := range keywordFrameworks {
		if strings.Contains(lower, kf.keyword) {
			frameworks = append(frameworks, kf.framework)
		}
	}

	if len(frameworks) == 0 {
		frameworks = append(frameworks,
			models.Framework{Name: "Web Framework", Description: "Modern web application framework", URL: "https://expressjs.com/", Popularity: 80},
			models.Framework{Name: "Database", Description: "Scalable database solution", URL: "https://www.postgresql.org/", Popularity: 85},
		)
	}

	e.logger.Debug("extracted frameworks from architecture text",
		zap.Int("frameworks_found", len(frameworks)),
	)
	return frameworks
}

// Analyze fills pattern and frameworks from remote text, and libraries and
// deployment from the requirements
func (e *Engine) Analyze(architecture string, req models.ProjectRequirements) models.ArchitectureRecommendation {
	return models.ArchitectureRecommendation{
		Pattern:     e.ExtractPattern(architecture),
		Description: architecture,
		Frameworks:  e.ExtractFrameworks(architecture),
		Libraries:   LibrariesFor(req),
		Deployment:  DeploymentOptions(req),
	}
}
