// Package diagram turns diagram sources and image payloads into renderable visuals.
package diagram

import (
	"encoding/base64"
	"strings"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

const defaultMimeType = "image/png"

// PlaceholderText is shown when a category has neither image nor source
const PlaceholderText = "Diagram not available"

// Materialize builds the visual for one diagram category. A decodable image
// wins, then non-empty source shown as code, then a placeholder. It never fails.
func Materialize(kind models.DiagramKind, umlCode, imageData, mimeType string) models.Diagram {
	d := models.Diagram{DiagramType: kind, PlantUMLCode: umlCode}

	if data := strings.TrimSpace(imageData); data != "" && isBase64(data) {
		if mimeType = strings.TrimSpace(mimeType); mimeType == "" {
			mimeType = defaultMimeType
		}
		d.Visual = models.Visual{
			Kind:     models.VisualImage,
			MimeType: mimeType,
			Src:      "data:" + mimeType + ";base64," + data,
		}
		return d
	}

	if strings.TrimSpace(umlCode) != "" {
		d.Visual = models.Visual{Kind: models.VisualCode, Content: umlCode}
		return d
	}

	d.Visual = models.Visual{Kind: models.VisualPlaceholder, Content: PlaceholderText}
	return d
}

// MaterializeAll applies the same remote payload to every category
func MaterializeAll(umlCode, imageData, mimeType string) models.Diagrams {
	var out models.Diagrams
	for _, kind := range models.DiagramKinds {
		out.Set(kind, Materialize(kind, umlCode, imageData, mimeType))
	}
	return out
}

// Placeholder returns an empty diagram for kind
func Placeholder(kind models.DiagramKind) models.Diagram {
	return Materialize(kind, "", "", "")
}

// DecodeImage returns the raw bytes of an image visual
func DecodeImage(v models.Visual) ([]byte, bool) {
	if v.Kind != models.VisualImage {
		return nil, false
	}
	_, data, ok := strings.Cut(v.Src, ";base64,")
	if !ok {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, false
	}
	return raw, true
}

func isBase64(s string) bool {
	if _, err := base64.StdEncoding.DecodeString(s); err == nil {
		return true
	}
	_, err := base64.RawStdEncoding.DecodeString(s)
	return err == nil
}
