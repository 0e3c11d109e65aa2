package models

import (
	"time"

	"github.com/google/uuid"
)

// Origin records which path produced a recommendation
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// DiagramKind identifies one of the five diagram categories
type DiagramKind string

const (
	DiagramFlowchart DiagramKind = "flowchart"
	DiagramUseCase   DiagramKind = "useCase"
	DiagramComponent DiagramKind = "component"
	DiagramSequence  DiagramKind = "sequence"
	DiagramClass     DiagramKind = "class"
)

// DiagramKinds lists every category in display order
var DiagramKinds = []DiagramKind{
	DiagramFlowchart,
	DiagramUseCase,
	DiagramComponent,
	DiagramSequence,
	DiagramClass,
}

// VisualKind says how a diagram should be rendered
type VisualKind string

const (
	VisualImage       VisualKind = "image"
	VisualCode        VisualKind = "code"
	VisualPlaceholder VisualKind = "placeholder"
)

// Visual is the renderable asset for one diagram
type Visual struct {
	Kind     VisualKind `json:"kind"`
	MimeType string     `json:"mimeType,omitempty"`
	Src      string     `json:"src,omitempty"`
	Content  string     `json:"content,omitempty"`
}

// Diagram holds the source and visual for one category
type Diagram struct {
	DiagramType  DiagramKind `json:"diagramType"`
	PlantUMLCode string      `json:"plantUmlCode"`
	Visual       Visual      `json:"visual"`
}

// Diagrams groups the five categories
type Diagrams struct {
	Flowchart Diagram `json:"flowchart"`
	UseCase   Diagram `json:"useCase"`
	Component Diagram `json:"component"`
	Sequence  Diagram `json:"sequence"`
	Class     Diagram `json:"class"`
}

// Get returns the diagram for kind
func (d *Diagrams) Get(kind DiagramKind) Diagram {
	switch kind {
	case DiagramFlowchart:
		return d.Flowchart
	case DiagramUseCase:
		return d.UseCase
	case DiagramComponent:
		return d.Component
	case DiagramSequence:
		return d.Sequence
	default:
		return d.Class
	}
}

// Set stores diag under kind
func (d *Diagrams) Set(kind DiagramKind, diag Diagram) {
	switch kind {
	case DiagramFlowchart:
		d.Flowchart = diag
	case DiagramUseCase:
		d.UseCase = diag
	case DiagramComponent:
		d.Component = diag
	case DiagramSequence:
		d.Sequence = diag
	case DiagramClass:
		d.Class = diag
	}
}

// Framework is a recommended framework
type Framework struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Popularity  int    `json:"popularity"`
}

// Library is a recommended library
type Library struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Popularity  int    `json:"popularity"`
}

// DeploymentMetrics scores a deployment option from 0 to 100
type DeploymentMetrics struct {
	Performance int `json:"performance"`
	Scalability int `json:"scalability"`
	Cost        int `json:"cost"`
	Maintenance int `json:"maintenance"`
	Security    int `json:"security"`
}

// DeploymentOption is one suggested way to host the system
type DeploymentOption struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	CostEstimate string            `json:"costEstimate"`
	Metrics      DeploymentMetrics `json:"metrics"`
}

// SearchResult is one item returned by a search strategy
type SearchResult struct {
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Source         string  `json:"source"`
	RelevanceScore float64 `json:"relevanceScore"`
	URL            string  `json:"url,omitempty"`
}

// ArchitectureRecommendation is the single shape handed to presentation,
// regardless of which path produced it
type ArchitectureRecommendation struct {
	Pattern       string             `json:"pattern"`
	Description   string             `json:"description"`
	Frameworks    []Framework        `json:"frameworks"`
	Libraries     []Library          `json:"libraries"`
	Deployment    []DeploymentOption `json:"deployment"`
	Diagrams      Diagrams           `json:"diagrams"`
	SearchResults []SearchResult     `json:"searchResults"`
}

// RecommendationResult wraps a recommendation with how it was produced
type RecommendationResult struct {
	ID             uuid.UUID                  `json:"id"`
	Recommendation ArchitectureRecommendation `json:"recommendation"`
	Origin         Origin                     `json:"origin"`
	Partial        bool                       `json:"partial"`
	Notices        []string                   `json:"notices,omitempty"`
	Architecture   string                     `json:"architecture,omitempty"`
	GeneratedAt    time.Time                  `json:"generatedAt"`
}
