package intelligence

import (
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
)

const decomposeSystemPromptHeader = `You decompose product requests into technical modules.
Produce a WBS of 6-12 tasks, each attached to one module.
Return strictly JSON with this structure:
{
  "tasks": [{"title": "...", "details": "...", "module_code": "...", "confidence": 0.0}],
  "suggestions": [{"module_code": "...", "confidence": 0.0, "notes": "..."}],
  "rationale": "..."
}
Pick module_code only from the catalog. Answer in the language of the request.
Catalog:
`

// BuildDecomposeSystemPrompt embeds the catalog, one "code: name — description"
// line per entry, in catalog order.
func BuildDecomposeSystemPrompt(catalog []domain.CatalogEntry) string {
	lines := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		line := entry.Code + ": " + entry.Name + " — " + entry.Description
		lines = append(lines, strings.TrimSpace(line))
	}
	return decomposeSystemPromptHeader + strings.Join(lines, "\n")
}
