package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/diagram"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

func newExtractCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "extract <bundle.json>",
		Short: "Write diagram sources and images from an export bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bundle.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading bundle: %w", err)
			}
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			out := cmd.OutOrStdout()
			write := func(name string, data []byte) error {
				path := filepath.Join(outputDir, name)
				if err := os.WriteFile(path, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", name, err)
				}
				fmt.Fprintf(out, "✅ Extracted %s\n", path)
				return nil
			}

			if arch := strings.TrimSpace(b.Result.Architecture); arch != "" {
				if err := write("architecture.md", []byte(arch+"\n")); err != nil {
					return err
				}
			}

			written := map[string]bool{}
			for _, kind := range models.DiagramKinds {
				d := b.Result.Recommendation.Diagrams.Get(kind)
				src := strings.TrimSpace(d.PlantUMLCode)
				// Remote diagrams share one source; write it once
				if src != "" && !written[src] {
					written[src] = true
					if err := write(string(kind)+".puml", []byte(src+"\n")); err != nil {
						return err
					}
				}
				if img, ok := diagram.DecodeImage(d.Visual); ok {
					if err := write(string(kind)+imageExt(d.Visual.MimeType), img); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	return cmd
}

func imageExt(mime string) string {
	switch mime {
	case "image/svg+xml":
		return ".svg"
	case "image/jpeg":
		return ".jpg"
	default:
		return ".png"
	}
}
