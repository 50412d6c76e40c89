package types

import "time"

// WriteResult describes what happened to a single destination file.
type WriteResult struct {
	Path       string `json:"path" yaml:"path"`
	BackupPath string `json:"backupPath,omitempty" yaml:"backupPath,omitempty"`
	Bytes      int    `json:"bytes" yaml:"bytes"`
	Created    bool   `json:"created" yaml:"created"`
}

// TargetResult holds the outcome for one target and all its destinations.
type TargetResult struct {
	Target       Target        `json:"target" yaml:"target"`
	Lines        int           `json:"lines" yaml:"lines"`
	Destinations []string      `json:"destinations" yaml:"destinations"`
	Writes       []WriteResult `json:"writes" yaml:"writes"`
}

// ConvertResult is returned by the convert command.
type ConvertResult struct {
	Source      string         `json:"source" yaml:"source"`
	SourceLines int            `json:"sourceLines" yaml:"sourceLines"`
	Targets     []TargetResult `json:"targets" yaml:"targets"`
	DryRun      bool           `json:"dryRun" yaml:"dryRun"`
	Timestamp   time.Time      `json:"timestamp" yaml:"timestamp"`
}

// FilesWritten returns every destination path that was actually written.
func (r *ConvertResult) FilesWritten() []string {
	var out []string
	for _, t := range r.Targets {
		for _, w := range t.Writes {
			out = append(out, w.Path)
		}
	}
	return out
}

// PlanResult lists the resolved paths without touching any file.
type PlanResult struct {
	Source          string   `json:"source" yaml:"source"`
	TemplateTargets []string `json:"templateTargets" yaml:"templateTargets"`
	PopupTargets    []string `json:"popupTargets" yaml:"popupTargets"`
}

// GenConfigResult holds the result of the gen-config command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent" yaml:"configContent"`
	FilesWritten  []string `json:"filesWritten" yaml:"filesWritten"`
}
