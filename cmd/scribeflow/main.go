package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/voxlab/scribeflow/internal/audio"
	"github.com/voxlab/scribeflow/internal/bus"
	"github.com/voxlab/scribeflow/internal/config"
	"github.com/voxlab/scribeflow/internal/daemon"
	"github.com/voxlab/scribeflow/internal/deps"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/pipeline"
	"github.com/voxlab/scribeflow/internal/provider"
	"github.com/voxlab/scribeflow/internal/segment"
	"github.com/voxlab/scribeflow/internal/store"
	"github.com/voxlab/scribeflow/internal/transcriber"
	"github.com/voxlab/scribeflow/internal/tui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "scribeflow",
	Short:         "Audio segmentation and parallel transcription pipeline",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(
		processCmd(),
		serveCmd(),
		statusCmd(),
		versionCmd(),
		stopCmd(),
		configureCmd(),
		doctorCmd(),
		templatesCmd(),
		modelsCmd(),
	)
}

func processCmd() *cobra.Command {
	var (
		targetLanguage string
		template       string
		contextPairs   []string
		skipSegments   []int
		chapterSpecs   []string
		batchSize      int
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "process <file-or-url>",
		Short: "Transcribe one media file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if targetLanguage != "" {
				cfg.Output.TargetLanguage = targetLanguage
			}
			if template != "" {
				cfg.Output.Template = template
			}
			if batchSize > 0 {
				cfg.Transcription.BatchSize = batchSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			chapters, err := parseChapters(chapterSpecs)
			if err != nil {
				return err
			}
			templateContext, err := parseContext(contextPairs)
			if err != nil {
				return err
			}

			req := pipeline.Request{
				TargetLanguage:  cfg.Output.TargetLanguage,
				Template:        cfg.Output.Template,
				TemplateContext: templateContext,
				SkipSegments:    skipSegments,
				Chapters:        chapters,
			}
			source := args[0]
			if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
				req.URL = source
			} else {
				req.Path = source
			}

			p, err := buildPipeline(cfg)
			if err != nil {
				return err
			}
			p.OnProgress(func(stage pipeline.Stage, msg string) {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, msg)
			})

			res, err := p.Process(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Println(res.Transcription.Text)
			fmt.Fprintf(os.Stderr, "\n%d segments, language %q, %d tokens, stored in %s\n",
				len(res.Transcription.Segments), res.Transcription.DetectedLanguage,
				res.Transcription.TotalTokens(), res.ProcessDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetLanguage, "target-language", "", "translate the transcript into this language code")
	cmd.Flags().StringVar(&template, "template", "", "apply a named output template")
	cmd.Flags().StringArrayVar(&contextPairs, "context", nil, "template context as key=value (repeatable)")
	cmd.Flags().IntSliceVar(&skipSegments, "skip-segments", nil, "segment indices to reuse from a previous run")
	cmd.Flags().StringArrayVar(&chapterSpecs, "chapter", nil, "chapter as start-end[:title], e.g. 0s-5m:Intro (repeatable)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "override the configured batch size")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	return cmd
}

func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	ta, err := transcriber.NewAdapter(cfg.ToTranscriberConfig())
	if err != nil {
		return nil, err
	}

	var la llm.Adapter
	if cfg.NeedsLLM() {
		la, err = llm.NewAdapter(cfg.ToLLMConfig())
		if err != nil {
			return nil, err
		}
	}

	st := store.New(afero.NewOsFs(), dataDir)
	return pipeline.New(cfg.ToPipelineConfig(), audio.NewLoader(cfg.TmpDir()), st, ta, la), nil
}

// parseChapters turns "start-end[:title]" specs into chapter marks.
// Durations use Go syntax, e.g. "1m30s".
func parseChapters(specs []string) ([]segment.Chapter, error) {
	chapters := make([]segment.Chapter, 0, len(specs))
	for _, spec := range specs {
		rng, title, _ := strings.Cut(spec, ":")
		from, to, ok := strings.Cut(rng, "-")
		if !ok {
			return nil, fmt.Errorf("invalid chapter %q (want start-end[:title])", spec)
		}
		start, err := time.ParseDuration(from)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter start in %q: %w", spec, err)
		}
		end, err := time.ParseDuration(to)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter end in %q: %w", spec, err)
		}
		if end <= start {
			return nil, fmt.Errorf("invalid chapter %q: end before start", spec)
		}
		chapters = append(chapters, segment.Chapter{
			StartMs: start.Milliseconds(),
			EndMs:   end.Milliseconds(),
			Title:   title,
		})
	}
	return chapters, nil
}

func parseContext(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ctx := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid context %q (want key=value)", pair)
		}
		ctx[k] = v
	}
	return ctx, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the watch daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return daemon.New(manager).Run()
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for scribeflow.
This will guide you through setting up:
- Provider API keys (OpenAI, Groq)
- Transcription model and batching
- Translation and output templates
- Watch daemon and notification preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = config.DefaultConfig()
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	return nil
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []struct {
				name     string
				status   deps.Status
				required bool
			}{
				{"ffmpeg", deps.CheckFFmpeg(), true},
				{"ffprobe", deps.CheckFFprobe(), false},
				{"notify-send", deps.CheckNotifySend(), false},
			}

			missing := false
			for _, c := range checks {
				if c.status.Installed {
					fmt.Printf("  [x] %-12s %s\n", c.name, c.status.Path)
					if c.status.Version != "" {
						fmt.Printf("      %s\n", c.status.Version)
					}
				} else {
					note := "optional"
					if c.required {
						note = "required for non-WAV input"
						missing = true
					}
					fmt.Printf("  [ ] %-12s not found (%s)\n", c.name, note)
				}
			}

			if missing {
				return fmt.Errorf("required dependencies missing")
			}
			return nil
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available output templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range llm.ListTemplates() {
				fmt.Printf("  %-18s %s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}

func modelsCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available transcription and LLM models",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filterType *provider.ModelType
			switch strings.ToLower(typeFilter) {
			case "":
			case "transcription":
				t := provider.Transcription
				filterType = &t
			case "llm":
				t := provider.LLM
				filterType = &t
			default:
				return fmt.Errorf("invalid type: %s (use 'transcription' or 'llm')", typeFilter)
			}

			for _, name := range provider.ListProviders() {
				p := provider.GetProvider(name)
				if p == nil {
					continue
				}
				models := p.Models()
				if filterType != nil {
					models = provider.ModelsOfType(p, *filterType)
				}
				if len(models) == 0 {
					continue
				}

				fmt.Printf("\n%s:\n", name)
				for _, m := range models {
					line := "  " + m.ID
					if m.Description != "" {
						line += " - " + m.Description
					}
					if m.Type == provider.LLM {
						line += " [llm]"
					} else if m.MaxUploadBytes > 0 {
						line += fmt.Sprintf(" [%dMB uploads]", m.MaxUploadBytes/(1024*1024))
					}
					fmt.Println(line)
				}
			}

			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by type: transcription, llm")
	return cmd
}
