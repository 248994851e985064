package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/voxlab/scribeflow/internal/language"
)

// BuildTranslationSystemPrompt generates the system prompt for a
// transcript translation call.
func BuildTranslationSystemPrompt(sourceLang, targetLang string) string {
	target := language.DisplayName(targetLang)

	prompt := fmt.Sprintf("You are a professional translator. Translate the transcript into %s.\n\n", target)
	prompt += "Rules:\n"
	prompt += "- Preserve the original meaning and tone\n"
	prompt += "- Keep names, numbers and technical terms intact\n"
	prompt += "- Do not add or remove content\n"
	prompt += "- Output ONLY the translated text, nothing else\n"

	if sourceLang != "" {
		prompt += fmt.Sprintf("\nThe source language is %s.\n", language.DisplayName(sourceLang))
	}
	return prompt
}

// BuildTemplateSystemPrompt generates the system prompt for a template
// transform, folding in the target language and caller context.
func BuildTemplateSystemPrompt(tmpl Template, targetLang string, context map[string]string) string {
	prompt := tmpl.System
	if targetLang != "" {
		prompt += fmt.Sprintf("\nWrite the output in %s.\n", language.DisplayName(targetLang))
	} else {
		prompt += "\nWrite the output in the transcript's language.\n"
	}

	if len(context) > 0 {
		keys := make([]string, 0, len(context))
		for k := range context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var pairs []string
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, context[k]))
		}
		prompt += fmt.Sprintf("\nCaller context:\n%s\n", strings.Join(pairs, "\n"))
	}
	return prompt
}
