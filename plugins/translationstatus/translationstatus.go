package translationstatus

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/intel"
)

const PluginID = "translation_status"

func Descriptor() intel.Descriptor {
	return intel.Descriptor{
		ID:          PluginID,
		Label:       "Translation Status",
		Description: "Langcode validity and site language coverage",
		EntityTypes: []string{"node", "taxonomy_term"},
		Weight:      20,
		Provider:    "content-intel",
	}
}

// Plugin validates an entity's langcode against BCP 47 and reports where it
// stands relative to the site's configured languages. The language list is
// injected at construction; the first entry is the site default.
type Plugin struct {
	intel.Base
	languages []string
}

func New(languages []string) (intel.Plugin, error) {
	return &Plugin{Base: intel.NewBase(Descriptor()), languages: languages}, nil
}

func (p *Plugin) Collect(_ context.Context, e entity.Entity) (intel.Data, error) {
	langcode := e.Langcode()
	if langcode == "" {
		return nil, nil
	}

	tag, err := language.Parse(langcode)
	if err != nil {
		return intel.Data{
			"langcode": langcode,
			"valid":    false,
		}, nil
	}

	data := intel.Data{
		"langcode":      langcode,
		"valid":         true,
		"canonical":     tag.String(),
		"language_name": display.English.Languages().Name(tag),
	}

	if len(p.languages) > 0 {
		data["site_languages"] = append([]string(nil), p.languages...)
		data["is_default"] = langcode == p.languages[0]
		data["site_language"] = contains(p.languages, langcode)
	}
	return data, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
