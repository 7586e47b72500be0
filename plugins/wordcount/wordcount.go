package wordcount

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/intel"
)

const PluginID = "word_count"

// Descriptor returns the static metadata for the word count plugin.
func Descriptor() intel.Descriptor {
	return intel.Descriptor{
		ID:          PluginID,
		Label:       "Word Count",
		Description: "Word and character totals across text-bearing fields",
		Weight:      -10,
		Provider:    "content-intel",
	}
}

// Plugin counts words and characters in every text-bearing field of an
// entity. It has no external dependencies, so it is always available.
type Plugin struct {
	intel.Base
}

func New() (intel.Plugin, error) {
	return &Plugin{Base: intel.NewBase(Descriptor())}, nil
}

func (p *Plugin) Collect(_ context.Context, e entity.Entity) (intel.Data, error) {
	var totalWords, totalChars, analyzed int
	breakdown := make(map[string]any)

	for _, f := range e.Fields() {
		text, ok := entity.TextContent(f)
		if !ok {
			continue
		}
		words := len(strings.Fields(text))
		chars := utf8.RuneCountInString(text)
		breakdown[f.Name] = map[string]any{"words": words, "characters": chars}
		totalWords += words
		totalChars += chars
		analyzed++
	}

	if analyzed == 0 {
		// No prose means no contribution, not a zeroed payload.
		return nil, nil
	}
	return intel.Data{
		"total_words":      totalWords,
		"total_characters": totalChars,
		"fields_analyzed":  analyzed,
		"field_breakdown":  breakdown,
	}, nil
}
