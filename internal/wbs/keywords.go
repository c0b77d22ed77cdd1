// Package wbs resolves work-breakdown tasks to catalog modules and turns a
// resolved WBS into a root → module → task mindmap graph.
package wbs

import (
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Heuristic confidence floors applied by MapTaskToModule.
const (
	MatchedConfidence  = 0.6
	FallbackConfidence = 0.35
)

// DefaultModuleCode is preferred whenever nothing in the catalog matches.
const DefaultModuleCode = "core"

const minKeywordRunes = 3

// KeywordIndex maps module codes to their keywords, remembering catalog
// order so ties resolve to the first-seen module.
type KeywordIndex struct {
	codes    []string
	keywords map[string][]string
}

// BuildKeywordIndex tokenizes code, name and description of every entry.
// Tokens are lowercased and kept when longer than two characters. Stopwords
// are kept too.
func BuildKeywordIndex(catalog []domain.CatalogEntry) *KeywordIndex {
	ix := &KeywordIndex{keywords: make(map[string][]string, len(catalog))}
	for _, entry := range catalog {
		if _, seen := ix.keywords[entry.Code]; !seen {
			ix.codes = append(ix.codes, entry.Code)
		}
		ix.keywords[entry.Code] = ExtractKeywords(entry.Code + " " + entry.Name + " " + entry.Description)
	}
	return ix
}

// ExtractKeywords returns the distinct lowercased tokens of text with more
// than two characters. An em-dash counts as whitespace.
func ExtractKeywords(text string) []string {
	text = strings.ReplaceAll(text, "—", " ")
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Fields(text) {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if utf8.RuneCountInString(tok) < minKeywordRunes || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Codes returns module codes in catalog order.
func (ix *KeywordIndex) Codes() []string {
	out := make([]string, len(ix.codes))
	copy(out, ix.codes)
	return out
}

// Has reports whether code is a catalog module.
func (ix *KeywordIndex) Has(code string) bool {
	_, ok := ix.keywords[code]
	return ok
}

// Keywords returns the keywords indexed for code.
func (ix *KeywordIndex) Keywords(code string) []string {
	return ix.keywords[code]
}

// Len returns the number of indexed modules.
func (ix *KeywordIndex) Len() int {
	return len(ix.codes)
}

// NormalizeModuleCode returns candidate when it is an indexed code and ""
// otherwise. Invalid codes are never guessed.
func NormalizeModuleCode(candidate string, ix *KeywordIndex) string {
	if ix.Has(candidate) {
		return candidate
	}
	return ""
}

// FallbackModuleCode returns "core" when indexed, else the first module in
// catalog order, else "".
func FallbackModuleCode(ix *KeywordIndex) string {
	if ix.Has(DefaultModuleCode) {
		return DefaultModuleCode
	}
	if len(ix.codes) > 0 {
		return ix.codes[0]
	}
	return ""
}

// MapTaskToModule picks the module whose keywords occur most often as
// substrings of title+details. Matching is plain substring containment, so
// partial words count. The strictly highest score wins; ties keep the
// earlier module. Without any hit the fallback module is used.
func MapTaskToModule(title, details string, ix *KeywordIndex, priorConfidence float64) (string, float64) {
	text := strings.ToLower(title + " " + details)

	bestCode := ""
	bestScore := 0
	for _, code := range ix.codes {
		score := 0
		for _, kw := range ix.keywords[code] {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestCode = code
		}
	}

	if bestCode == "" {
		return FallbackModuleCode(ix), max(priorConfidence, FallbackConfidence)
	}
	return bestCode, max(priorConfidence, MatchedConfidence)
}
