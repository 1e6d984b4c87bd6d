package analysis

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/analyze_job_system.md
var systemPromptRaw string

//go:embed prompts/analyze_job_user.tmpl
var userPromptRaw string

// SystemPrompt is the fixed instruction sent with every analysis.
var SystemPrompt = strings.TrimSpace(systemPromptRaw)

// UserPromptTemplate renders the per-request message. Parsed once at package init.
var UserPromptTemplate = template.Must(template.New("analyze_job_user").Parse(userPromptRaw))
