package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/voxlab/scribeflow/internal/config"
	"github.com/voxlab/scribeflow/internal/language"
	"github.com/voxlab/scribeflow/internal/llm"
	"github.com/voxlab/scribeflow/internal/provider"
)

// ConfigureResult holds the configuration result from the TUI.
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// providerDisplayNames maps provider IDs to human-readable names.
var providerDisplayNames = map[string]string{
	"openai": "OpenAI",
	"groq":   "Groq",
}

func getProviderDisplayName(providerName string) string {
	if name, ok := providerDisplayNames[providerName]; ok {
		return name
	}
	return providerName
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

// Run walks the user through the configuration sections and returns the
// edited config. Ctrl+C at any point cancels without saving.
func Run(cfg *config.Config) (*ConfigureResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	fmt.Println(Logo())
	fmt.Println(StyleSubtle.Render("Audio transcription pipeline configuration"))
	fmt.Println()

	steps := []func(*config.Config) error{
		runProviderKeys,
		runTranscription,
		runOutput,
		runNotifications,
		runWatch,
	}
	for _, step := range steps {
		if err := step(cfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return &ConfigureResult{Cancelled: true}, nil
			}
			return nil, err
		}
	}

	return &ConfigureResult{Config: cfg}, nil
}

func runProviderKeys(cfg *config.Config) error {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.ProviderConfig)
	}

	for _, name := range provider.ListProviders() {
		pc := cfg.Providers[name]

		title := fmt.Sprintf("%s API key", getProviderDisplayName(name))
		desc := fmt.Sprintf("Leave empty to use the %s environment variable", provider.EnvVarForProvider(name))
		if pc.APIKey != "" {
			desc = fmt.Sprintf("Currently %s - leave empty to keep", maskAPIKey(pc.APIKey))
		}

		var key string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(desc).
				EchoMode(huh.EchoModePassword).
				Value(&key),
		))
		if err := form.Run(); err != nil {
			return err
		}

		if key = strings.TrimSpace(key); key != "" {
			pc.APIKey = key
			cfg.Providers[name] = pc
		}
	}
	return nil
}

func runTranscription(cfg *config.Config) error {
	providerOpts := make([]huh.Option[string], 0, 2)
	for _, name := range provider.ListProviders() {
		providerOpts = append(providerOpts, huh.NewOption(getProviderDisplayName(name), name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Transcription provider").
			Options(providerOpts...).
			Value(&cfg.Transcription.Provider),
	))
	if err := form.Run(); err != nil {
		return err
	}

	p := provider.GetProvider(cfg.Transcription.Provider)
	if p == nil {
		return fmt.Errorf("unknown provider: %s", cfg.Transcription.Provider)
	}

	modelOpts := make([]huh.Option[string], 0, 4)
	for _, m := range provider.ModelsOfType(p, provider.Transcription) {
		label := m.ID
		if m.Description != "" {
			label = fmt.Sprintf("%s - %s", m.ID, m.Description)
		}
		modelOpts = append(modelOpts, huh.NewOption(label, m.ID))
	}

	batchSize := strconv.Itoa(cfg.Transcription.BatchSize)
	form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Transcription model").
			Options(modelOpts...).
			Value(&cfg.Transcription.Model),
		huh.NewSelect[string]().
			Title("Source language").
			Description("Hint for the transcription service").
			Options(languageOptions("Auto-detect")...).
			Value(&cfg.Transcription.Language),
		huh.NewInput().
			Title("Batch size").
			Description("Concurrent transcription calls per batch").
			Validate(validatePositiveInt).
			Value(&batchSize),
	))
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Transcription.BatchSize, _ = strconv.Atoi(strings.TrimSpace(batchSize))
	return nil
}

func runOutput(cfg *config.Config) error {
	templateOpts := []huh.Option[string]{huh.NewOption("None (raw transcript)", "")}
	for _, t := range llm.ListTemplates() {
		templateOpts = append(templateOpts, huh.NewOption(fmt.Sprintf("%s - %s", t.Name, t.Description), t.Name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Target language").
			Description("Transcripts in another language are translated").
			Options(languageOptions("Keep detected language")...).
			Value(&cfg.Output.TargetLanguage),
		huh.NewSelect[string]().
			Title("Output template").
			Options(templateOpts...).
			Value(&cfg.Output.Template),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if !cfg.NeedsLLM() {
		return nil
	}

	llmProviderOpts := make([]huh.Option[string], 0, 2)
	for _, name := range provider.ListProviders() {
		llmProviderOpts = append(llmProviderOpts, huh.NewOption(getProviderDisplayName(name), name))
	}

	form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("LLM provider").
			Description("Used for translation and templates").
			Options(llmProviderOpts...).
			Value(&cfg.LLM.Provider),
	))
	if err := form.Run(); err != nil {
		return err
	}

	lp := provider.GetProvider(cfg.LLM.Provider)
	if lp == nil {
		return fmt.Errorf("unknown provider: %s", cfg.LLM.Provider)
	}

	llmModelOpts := make([]huh.Option[string], 0, 4)
	for _, m := range provider.ModelsOfType(lp, provider.LLM) {
		label := m.ID
		if m.Description != "" {
			label = fmt.Sprintf("%s - %s", m.ID, m.Description)
		}
		llmModelOpts = append(llmModelOpts, huh.NewOption(label, m.ID))
	}

	form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("LLM model").
			Options(llmModelOpts...).
			Value(&cfg.LLM.Model),
	))
	return form.Run()
}

func runNotifications(cfg *config.Config) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Enable job notifications?").
			Value(&cfg.Notifications.Enabled),
		huh.NewSelect[string]().
			Title("Notification type").
			Options(
				huh.NewOption("Desktop (notify-send)", "desktop"),
				huh.NewOption("Log only", "log"),
				huh.NewOption("None", "none"),
			).
			Value(&cfg.Notifications.Type),
	))
	return form.Run()
}

func runWatch(cfg *config.Config) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Watch inbox directory").
			Description("Files dropped here are transcribed by the daemon (empty to disable)").
			Value(&cfg.Watch.InboxDir),
	))
	return form.Run()
}

func languageOptions(emptyLabel string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(emptyLabel, "")}
	for _, l := range language.List() {
		opts = append(opts, huh.NewOption(l.Name, l.Code))
	}
	return opts
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
