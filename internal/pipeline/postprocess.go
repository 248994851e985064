package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voxlab/scribeflow/internal/llm"
)

// postProcess conditionally transforms the aggregated text. Evaluated
// in order: a supplied template always wins; otherwise a language
// mismatch triggers translation; otherwise the text passes through.
func (p *Pipeline) postProcess(ctx context.Context, res *TranscriptionResult, req Request) error {
	switch {
	case req.Template != "":
		log.Printf("pipeline: applying template %q", req.Template)
		out, err := p.llm.Transform(ctx, res.Text, req.Template, req.TargetLanguage, req.TemplateContext)
		if err != nil {
			return fmt.Errorf("template transform %q: %w", req.Template, err)
		}
		res.SourceText = res.Text
		res.Text = out.Text
		res.Usage = append(res.Usage, usageFromLLM(out))
		return nil

	case req.TargetLanguage != "" && res.DetectedLanguage != req.TargetLanguage:
		log.Printf("pipeline: translating %s -> %s", res.DetectedLanguage, req.TargetLanguage)
		out, err := p.llm.Translate(ctx, res.Text, res.DetectedLanguage, req.TargetLanguage)
		if err != nil {
			return fmt.Errorf("translate to %s: %w", req.TargetLanguage, err)
		}
		res.SourceText = res.Text
		res.Text = out.Text
		res.Usage = append(res.Usage, usageFromLLM(out))
		return nil

	default:
		// languages match and no template: the aggregated text is final
		return nil
	}
}

func usageFromLLM(r *llm.Result) ModelUsage {
	return ModelUsage{
		Model:      r.Model,
		Tokens:     r.Tokens,
		DurationMs: r.Elapsed.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
}
