package collector

import (
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/intel"
)

// Entry is one plugin's contribution to a report. Exactly one of Data and
// Error is set.
type Entry struct {
	PluginLabel string     `json:"pluginLabel"`
	Data        intel.Data `json:"data,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Report is the aggregated output of one collection request. It is created
// fresh per request and never cached.
type Report struct {
	Entity entity.Summary   `json:"entity"`
	Fields map[string]any   `json:"fields"`
	Intel  map[string]Entry `json:"intel"`
}

// ReportAlterer rewrites an assembled report before it is returned. Hooks
// may add, modify or remove any key, whole plugin sections included.
type ReportAlterer func(report *Report, e entity.Entity)
