// Package cards renders case lists into section content. ANSI colors stand
// in for the priority badge styling of the web UI.
package cards

import (
	"strings"
	"text/template"

	"github.com/c14220110/radiology-client/internal/common/models"
)

const (
	ansiRed    = "\x1b[31m"
	ansiOrange = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiGray   = "\x1b[90m"
	ansiReset  = "\x1b[0m"
)

var caseTmpl = template.Must(template.New("case").Funcs(template.FuncMap{
	"badge": PriorityBadge,
}).Parse(strings.TrimSpace(`
+-----------------------------------------
| {{.ShortID}}  [{{if .ScanType}}{{.ScanType}}{{else}}Scan{{end}}]  {{badge .Priority}}
| Patient: {{.PatientName}}
| Doctor:  {{.DoctorName}}
| Date: {{if .Date}}{{.Date}}{{else}}?{{end}} | {{if .TimeSlot}}{{.TimeSlot}}{{else}}?{{end}}
{{- if .Status}}
| Status: {{.Status}}
{{- end}}
{{- if .Diagnosis}}
| Diagnosis: {{.Diagnosis}}
{{- end}}
{{- if .RadiologistNotes}}
| Radiologist: {{.RadiologistNotes}}
{{- end}}
{{- if .AIReport}}
| AI Report: {{.AIReport}}
{{- end}}
+-----------------------------------------`)))

// PriorityBadge colors a priority value the way the web UI badges do.
func PriorityBadge(priority string) string {
	color := ansiGray
	switch priority {
	case models.PriorityCritical:
		color = ansiRed
	case models.PriorityMedium:
		color = ansiOrange
	case models.PrioritySafe:
		color = ansiGreen
	}
	label := priority
	if label == "" {
		label = "-"
	}
	return color + label + ansiReset
}

// RenderList produces one card per case, or the empty-state message when the
// result set is empty.
func RenderList(cases []models.Case, emptyText string) string {
	if len(cases) == 0 {
		return emptyText
	}
	var sb strings.Builder
	for i, c := range cases {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if err := caseTmpl.Execute(&sb, c); err != nil {
			sb.WriteString("| " + c.ShortID())
		}
	}
	return sb.String()
}
