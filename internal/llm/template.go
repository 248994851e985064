package llm

import (
	"fmt"
	"sort"
)

// Template is a named transformation applied to an aggregated transcript.
type Template struct {
	Name        string
	Description string
	System      string // system prompt skeleton for the transform
}

var templates = map[string]Template{
	"meeting-summary": {
		Name:        "meeting-summary",
		Description: "Decisions, action items and discussion summary",
		System: "You turn meeting transcripts into structured minutes.\n" +
			"Produce three sections: Summary, Decisions, Action Items.\n" +
			"Action items must name an owner when one is identifiable.",
	},
	"lecture-notes": {
		Name:        "lecture-notes",
		Description: "Structured study notes with key concepts",
		System: "You turn lecture transcripts into study notes.\n" +
			"Produce an outline of the main topics, key definitions and\n" +
			"examples mentioned, in the order they were presented.",
	},
	"podcast-chapters": {
		Name:        "podcast-chapters",
		Description: "Chapter list with one-line descriptions",
		System: "You turn podcast transcripts into a chapter list.\n" +
			"Produce a numbered list of chapters, each with a short title\n" +
			"and a one-line description of what is discussed.",
	},
	"interview-digest": {
		Name:        "interview-digest",
		Description: "Question/answer digest of an interview",
		System: "You turn interview transcripts into a Q&A digest.\n" +
			"Pair each substantive question with a condensed answer,\n" +
			"preserving the interviewee's wording for key claims.",
	},
}

// LookupTemplate returns a registered template by name.
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template: %s", name)
	}
	return t, nil
}

// ListTemplates returns all registered templates sorted by name.
func ListTemplates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
