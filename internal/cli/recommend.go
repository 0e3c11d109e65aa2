package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/diagram"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/fallback"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/pipeline"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

func newRecommendCmd(opts *globalOptions) *cobra.Command {
	var (
		backendURL  string
		timeout     time.Duration
		jsonOutput  bool
		outPath     string
		signingKey  string
		searchModel string
		plantUMLURL string
	)

	cmd := &cobra.Command{
		Use:   "recommend <requirements.yaml|requirements.json>",
		Short: "Generate an architecture recommendation",
		Long:  "Read project requirements, ask the AI backend for a recommendation and fall back to local rules when it cannot answer.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequirements(args[0])
			if err != nil {
				return err
			}

			logger := opts.logger()
			defer logger.Sync()

			keys := make(map[string]string)
			for _, name := range settings.KeyNames {
				if v := envOr(name, ""); v != "" {
					keys[name] = v
				}
			}
			store := settings.NewMemoryStore(backendURL, keys)

			var renderer fallback.Renderer
			if r := diagram.NewRenderer(plantUMLURL, 10*time.Second); r != nil {
				renderer = r
			}

			svc := pipeline.NewService(pipeline.Deps{
				Settings: store,
				Fetcher:  aiagent.NewClient(timeout, nil, logger),
				Fallback: fallback.NewGenerator(diagram.NewSynthesizer(), renderer, logger),
				Search:   search.NewService(searchProviders(), 0, logger),
			}, logger)

			result, err := svc.Generate(cmd.Context(), req, pipeline.Options{SearchModel: searchModel})
			if err != nil {
				return err
			}

			if outPath != "" {
				b, err := bundle.NewService(signingKey).Build(req, *result)
				if err != nil {
					return fmt.Errorf("building bundle: %w", err)
				}
				if err := bundle.Write(outPath, b); err != nil {
					return fmt.Errorf("writing bundle: %w", err)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprint(cmd.OutOrStdout(), RenderResult(req.ProjectName, result))
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Bundle written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", envOr("BACKEND_URL", ""), "AI backend base URL (default "+settings.DefaultBackendURL+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "AI backend request timeout")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the result as JSON")
	cmd.Flags().StringVar(&outPath, "out", "", "write a signed export bundle to this path")
	cmd.Flags().StringVar(&signingKey, "signing-key", envOr("BUNDLE_SIGNING_KEY", ""), "HMAC key used to sign the bundle")
	cmd.Flags().StringVar(&searchModel, "model", search.ModelDefault, "search model: default, groq, gemini, deepseek-coder or llama-3")
	cmd.Flags().StringVar(&plantUMLURL, "plantuml", envOr("PLANTUML_SERVER_URL", ""), "PlantUML server used to render fallback diagrams")
	return cmd
}

// searchProviders mirrors the server's provider set
func searchProviders() search.Providers {
	return search.Providers{
		Groq:   search.NewGroqSearcher(llm.NewGroqClient("", 30*time.Second)),
		Gemini: search.NewGeminiSearcher(llm.NewGeminiClient(envOr("GEMINI_MODEL", "gemini-2.0-flash"), 1, 2)),
		Serper: search.NewSerperSearcher("", 15*time.Second),
		Tavily: search.NewTavilySearcher("", 15*time.Second),
	}
}
