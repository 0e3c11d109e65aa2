package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// Spec describes what a synthesized diagram should show
type Spec struct {
	Title       string
	Description string
	Elements    []string
	Actors      []string
	Features    []string
}

// Synthesizer writes PlantUML source locally for each category
type Synthesizer struct{}

// NewSynthesizer creates a Synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize returns PlantUML source for kind
func (s *Synthesizer) Synthesize(ctx context.Context, kind models.DiagramKind, spec Spec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(spec.Elements) == 0 {
		spec.Elements = []string{"Application"}
	}
	if len(spec.Actors) == 0 {
		spec.Actors = []string{"User"}
	}

	var b strings.Builder
	b.WriteString("@startuml\n")
	if spec.Title != "" {
		fmt.Fprintf(&b, "title %s\n", spec.Title)
	}

	switch kind {
	case models.DiagramFlowchart:
		flowchart(&b, spec)
	case models.DiagramUseCase:
		useCase(&b, spec)
	case models.DiagramComponent:
		component(&b, spec)
	case models.DiagramSequence:
		sequence(&b, spec)
	case models.DiagramClass:
		class(&b, spec)
	default:
		return "", fmt.Errorf("unknown diagram kind %q", kind)
	}

	b.WriteString("@enduml\n")
	return b.String(), nil
}

func flowchart(b *strings.Builder, spec Spec) {
	b.WriteString("start\n")
	fmt.Fprintf(b, ":%s submits request;\n", spec.Actors[0])
	for _, e := range spec.Elements {
		fmt.Fprintf(b, ":%s;\n", e)
	}
	b.WriteString(":Return response;\nstop\n")
}

func useCase(b *strings.Builder, spec Spec) {
	b.WriteString("left to right direction\n")
	for i, a := range spec.Actors {
		fmt.Fprintf(b, "actor \"%s\" as A%d\n", a, i)
	}
	cases := spec.Features
	if len(cases) == 0 {
		cases = []string{"Use application"}
	}
	b.WriteString("rectangle System {\n")
	for i, c := range cases {
		fmt.Fprintf(b, "  usecase \"%s\" as UC%d\n", c, i)
	}
	b.WriteString("}\n")
	for i := range spec.Actors {
		for j := range cases {
			fmt.Fprintf(b, "A%d --> UC%d\n", i, j)
		}
	}
}

func component(b *strings.Builder, spec Spec) {
	for i, e := range spec.Elements {
		fmt.Fprintf(b, "component \"%s\" as C%d\n", e, i)
	}
	for i := 1; i < len(spec.Elements); i++ {
		fmt.Fprintf(b, "C%d --> C%d\n", i-1, i)
	}
}

func sequence(b *strings.Builder, spec Spec) {
	fmt.Fprintf(b, "actor \"%s\" as U\n", spec.Actors[0])
	for i, e := range spec.Elements {
		fmt.Fprintf(b, "participant \"%s\" as P%d\n", e, i)
	}
	b.WriteString("U -> P0: request\n")
	for i := 1; i < len(spec.Elements); i++ {
		fmt.Fprintf(b, "P%d -> P%d: forward\n", i-1, i)
	}
	for i := len(spec.Elements) - 1; i > 0; i-- {
		fmt.Fprintf(b, "P%d --> P%d: result\n", i, i-1)
	}
	b.WriteString("P0 --> U: response\n")
}

func class(b *strings.Builder, spec Spec) {
	for _, e := range spec.Elements {
		name := identifier(e)
		fmt.Fprintf(b, "class %s {\n  +handle()\n}\n", name)
	}
	for i := 1; i < len(spec.Elements); i++ {
		fmt.Fprintf(b, "%s --> %s\n", identifier(spec.Elements[i-1]), identifier(spec.Elements[i]))
	}
}

func identifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Element"
	}
	return b.String()
}
