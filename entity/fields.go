package entity

import (
	"time"
)

// FieldKind selects the extraction rule for a field value.
type FieldKind string

const (
	KindScalar    FieldKind = "scalar"
	KindReference FieldKind = "reference"
	KindMedia     FieldKind = "media"
	KindRichText  FieldKind = "rich_text"
	KindLink      FieldKind = "link"
	KindTemporal  FieldKind = "temporal"
	KindBoolean   FieldKind = "boolean"
)

// Field is one named value attached to an entity. Computed fields carry
// derived data and are excluded from snapshots.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Computed bool
	Value    any
}

// Reference points at another entity.
type Reference struct {
	TargetID   string `json:"targetId"`
	TargetType string `json:"targetType,omitempty"`
	Label      string `json:"label,omitempty"`
}

// Media points at a managed file.
type Media struct {
	TargetID string `json:"targetId"`
	Filename string `json:"filename"`
	URI      string `json:"uri"`
	URL      string `json:"url"`
	Mime     string `json:"mime"`
	Size     int64  `json:"size"`
}

// RichText is formatted body text.
type RichText struct {
	Value     string `json:"value"`
	Format    string `json:"format"`
	Processed string `json:"processed,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Link is an outbound link value.
type Link struct {
	URI     string         `json:"uri"`
	Title   string         `json:"title"`
	Options map[string]any `json:"options"`
}

// Snapshot extracts every non-computed, non-empty field into its JSON shape,
// restricted to filter when filter is non-empty. Keys are field names.
func Snapshot(e Entity, filter []string) map[string]any {
	wanted := make(map[string]bool, len(filter))
	for _, name := range filter {
		wanted[name] = true
	}

	out := make(map[string]any)
	for _, f := range e.Fields() {
		if f.Computed {
			continue
		}
		if len(wanted) > 0 && !wanted[f.Name] {
			continue
		}
		value, ok := extract(f)
		if !ok {
			continue
		}
		out[f.Name] = value
	}
	return out
}

// extract converts one field value to its wire shape. The second return is
// false for empty values, which are omitted from the snapshot entirely.
func extract(f Field) (any, bool) {
	if f.Value == nil {
		return nil, false
	}

	switch f.Kind {
	case KindReference:
		ref, ok := f.Value.(Reference)
		if !ok || ref.TargetID == "" {
			return nil, false
		}
		out := map[string]any{"targetId": ref.TargetID}
		if ref.TargetType != "" {
			out["targetType"] = ref.TargetType
		}
		if ref.Label != "" {
			out["label"] = ref.Label
		}
		return out, true

	case KindMedia:
		m, ok := f.Value.(Media)
		if !ok || m.TargetID == "" {
			return nil, false
		}
		return map[string]any{
			"targetId": m.TargetID,
			"filename": m.Filename,
			"uri":      m.URI,
			"url":      m.URL,
			"mime":     m.Mime,
			"size":     m.Size,
		}, true

	case KindRichText:
		rt, ok := f.Value.(RichText)
		if !ok || rt.Value == "" {
			return nil, false
		}
		out := map[string]any{"value": rt.Value, "format": rt.Format}
		if rt.Processed != "" {
			out["processed"] = rt.Processed
		}
		if rt.Summary != "" {
			out["summary"] = rt.Summary
		}
		return out, true

	case KindLink:
		l, ok := f.Value.(Link)
		if !ok || l.URI == "" {
			return nil, false
		}
		options := l.Options
		if options == nil {
			options = map[string]any{}
		}
		return map[string]any{"uri": l.URI, "title": l.Title, "options": options}, true

	case KindTemporal:
		ts, ok := f.Value.(time.Time)
		if !ok || ts.IsZero() {
			return nil, false
		}
		return map[string]any{
			"timestamp": ts.Unix(),
			"iso8601":   ts.UTC().Format(time.RFC3339),
		}, true

	case KindBoolean:
		b, ok := f.Value.(bool)
		if !ok {
			return nil, false
		}
		// false is still a value; only a missing boolean is empty.
		return b, true

	default:
		if s, ok := f.Value.(string); ok && s == "" {
			return nil, false
		}
		return f.Value, true
	}
}

// TextContent returns the plain text carried by a field, for plugins that
// analyze prose (scalar strings and rich text bodies).
func TextContent(f Field) (string, bool) {
	if f.Computed || f.Value == nil {
		return "", false
	}
	switch f.Kind {
	case KindScalar:
		s, ok := f.Value.(string)
		return s, ok && s != ""
	case KindRichText:
		rt, ok := f.Value.(RichText)
		return rt.Value, ok && rt.Value != ""
	default:
		return "", false
	}
}
