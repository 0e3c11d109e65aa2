package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// loadRequirements reads a YAML or JSON requirements file. YAML goes through
// the JSON decoder so both formats accept the same field aliases.
func loadRequirements(path string) (models.ProjectRequirements, error) {
	var req models.ProjectRequirements

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading requirements: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return req, fmt.Errorf("parsing YAML: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return req, fmt.Errorf("converting YAML: %w", err)
		}
	case ".json":
	default:
		return req, fmt.Errorf("unsupported requirements format %q, use .yaml or .json", filepath.Ext(path))
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parsing requirements: %w", err)
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}
