// Package fallback computes a recommendation locally when the AI backend
// cannot provide one.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/analysis"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/diagram"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Synthesizer produces diagram source for one category
type Synthesizer interface {
	Synthesize(ctx context.Context, kind models.DiagramKind, spec diagram.Spec) (string, error)
}

// Renderer turns diagram source into an image payload
type Renderer interface {
	Render(ctx context.Context, source string) (data string, mimeType string, err error)
}

// Generator builds recommendations from static tables
type Generator struct {
	synth    Synthesizer
	renderer Renderer
	logger   *zap.Logger
}

// NewGenerator creates a Generator. renderer may be nil.
func NewGenerator(synth Synthesizer, renderer Renderer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if synth == nil {
		synth = diagram.NewSynthesizer()
	}
	return &Generator{synth: synth, renderer: renderer, logger: logger}
}

// SelectPattern applies the rules in priority order and returns the pattern
// together with the sentence describing it
func SelectPattern(req models.ProjectRequirements) (string, string) {
	projectType := strings.TrimSpace(req.ProjectType)
	if projectType == "" {
		projectType = "software"
	}

	scale := strings.ToLower(strings.TrimSpace(req.Scale))
	size := strings.ToLower(strings.TrimSpace(req.Size))
	switch {
	case scale == "large" || scale == "high" || scale == "enterprise" || size == "large" || size == "enterprise":
		return analysis.PatternMicroservices,
			fmt.Sprintf("A scalable %s application using microservices architecture to handle large-scale operations.", projectType)
	case req.HasFeature("realtime"):
		return analysis.PatternEventDriven,
			fmt.Sprintf("A %s application with event-driven architecture for real-time features.", projectType)
	case strings.Contains(strings.ToLower(projectType), "serverless"):
		return analysis.PatternServerless,
			fmt.Sprintf("A %s application built on managed serverless functions that scale with demand.", projectType)
	default:
		return analysis.PatternLayered,
			fmt.Sprintf("A %s application with a layered architecture approach.", projectType)
	}
}

// Generate returns a complete recommendation. Diagram failures degrade to
// placeholders; only a cancelled context makes it fail.
func (g *Generator) Generate(ctx context.Context, req models.ProjectRequirements) (models.ArchitectureRecommendation, error) {
	pattern, description := SelectPattern(req)
	frameworks := analysis.FrameworksFor(req)

	rec := models.ArchitectureRecommendation{
		Pattern:     pattern,
		Description: description,
		Frameworks:  frameworks,
		Libraries:   analysis.LibrariesFor(req),
		Deployment:  analysis.DeploymentOptions(req),
	}

	elements := make([]string, 0, len(frameworks))
	for _, f := range frameworks {
		elements = append(elements, f.Name)
	}
	spec := diagram.Spec{
		Title:       strings.TrimSpace(req.ProjectName + " Architecture"),
		Description: description,
		Elements:    elements,
		Actors:      actors(req),
		Features:    req.Features,
	}

	diagrams, err := g.diagrams(ctx, spec)
	if err != nil {
		return models.ArchitectureRecommendation{}, err
	}
	rec.Diagrams = diagrams

	g.logger.Info("fallback recommendation generated",
		zap.String("pattern", pattern),
		zap.String("domain", string(req.Domain)),
		zap.Int("frameworks", len(frameworks)),
	)
	return rec, nil
}

// diagrams synthesizes the five categories concurrently
func (g *Generator) diagrams(ctx context.Context, spec diagram.Spec) (models.Diagrams, error) {
	results := make([]models.Diagram, len(models.DiagramKinds))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, kind := range models.DiagramKinds {
		eg.Go(func() error {
			results[i] = g.diagram(egCtx, kind, spec)
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return models.Diagrams{}, fmt.Errorf("generate diagrams: %w", err)
	}

	var out models.Diagrams
	for i, kind := range models.DiagramKinds {
		out.Set(kind, results[i])
	}
	return out, nil
}

func (g *Generator) diagram(ctx context.Context, kind models.DiagramKind, spec diagram.Spec) (d models.Diagram) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("diagram synthesis panicked",
				zap.String("kind", string(kind)),
				zap.Any("panic", r),
			)
			d = diagram.Placeholder(kind)
		}
	}()

	source, err := g.synth.Synthesize(ctx, kind, spec)
	if err != nil {
		g.logger.Warn("diagram synthesis failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return diagram.Placeholder(kind)
	}

	var image, mime string
	if g.renderer != nil {
		image, mime, err = g.renderer.Render(ctx, source)
		if err != nil {
			g.logger.Warn("diagram rendering failed",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			image, mime = "", ""
		}
	}
	return diagram.Materialize(kind, source, image, mime)
}

func actors(req models.ProjectRequirements) []string {
	if len(req.UserRoles) > 0 {
		return req.UserRoles
	}
	if req.IsHealthcare() {
		return []string{"Patient", "Doctor", "Administrator"}
	}
	return []string{"User", "Admin"}
}
