// Package knowledge serves the static payment-security corpus: direct
// category/section lookup plus full-text search over the section contents.
package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"go.uber.org/zap"

	"github.com/digiraksha/mitra/pkg/utils"
)

// SearchResult is one ranked corpus hit.
type SearchResult struct {
	Category  string  `json:"category"`
	Section   string  `json:"section"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

type indexedSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Base holds the corpus and its in-memory full-text index.
type Base struct {
	sections []Section
	byKey    map[string]*Section
	index    bleve.Index
	logger   *zap.Logger
}

// New indexes the built-in corpus in a memory-only full-text index. A
// failure to build the index is not fatal: search degrades to the lexical
// overlap scorer.
func New(logger *zap.Logger) *Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	sections := builtinCorpus()
	byKey := make(map[string]*Section, len(sections))
	for i := range sections {
		byKey[sectionKey(sections[i].Category, sections[i].Name)] = &sections[i]
	}

	b := &Base{sections: sections, byKey: byKey, logger: logger}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	im.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(im)
	if err != nil {
		logger.Warn("failed to build knowledge index, using lexical search", zap.Error(err))
		return b
	}
	for i := range sections {
		s := &sections[i]
		doc := indexedSection{Title: s.Title, Content: s.Content}
		if err := idx.Index(sectionKey(s.Category, s.Name), doc); err != nil {
			logger.Warn("failed to index knowledge section",
				zap.String("section", s.Name), zap.Error(err))
		}
	}
	b.index = idx
	return b
}

func sectionKey(category, name string) string {
	return category + "/" + name
}

// Lookup returns a section's content, or the whole category joined when
// section is empty. Unknown keys return an error.
func (b *Base) Lookup(category, section string) (string, error) {
	if section != "" {
		s, ok := b.byKey[sectionKey(category, section)]
		if !ok {
			return "", fmt.Errorf("unknown knowledge section: %s/%s", category, section)
		}
		return s.Content, nil
	}
	var parts []string
	for i := range b.sections {
		if b.sections[i].Category == category {
			parts = append(parts, "**"+b.sections[i].Title+"**\n"+b.sections[i].Content)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("unknown knowledge category: %s", category)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Search returns up to limit ranked sections for the query. The full-text
// index serves when available; otherwise a keyword-overlap score ranks the
// sections directly.
func (b *Base) Search(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = 5
	}
	if b.index != nil {
		if results, err := b.searchIndexed(query, limit); err == nil {
			return results
		} else {
			b.logger.Warn("knowledge index search failed, using lexical fallback", zap.Error(err))
		}
	}
	return b.searchLexical(query, limit)
}

func (b *Base) searchIndexed(query string, limit int) ([]SearchResult, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	res, err := b.index.Search(req)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		s, ok := b.byKey[hit.ID]
		if !ok {
			continue
		}
		out = append(out, SearchResult{
			Category:  s.Category,
			Section:   s.Name,
			Title:     s.Title,
			Content:   s.Content,
			Relevance: hit.Score,
		})
	}
	return out, nil
}

// searchLexical ranks sections by query-word overlap with a phrase bonus.
func (b *Base) searchLexical(query string, limit int) []SearchResult {
	queryWords := utils.KeywordSet(utils.ExtractKeywords(query))
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	var out []SearchResult
	for i := range b.sections {
		s := &b.sections[i]
		score := overlapScore(queryWords, lowerQuery, strings.ToLower(s.Content))
		if score > 0.1 {
			out = append(out, SearchResult{
				Category:  s.Category,
				Section:   s.Name,
				Title:     s.Title,
				Content:   s.Content,
				Relevance: score,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Relevance > out[j].Relevance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func overlapScore(queryWords map[string]bool, lowerQuery, lowerText string) float64 {
	if len(queryWords) == 0 {
		return 0
	}
	matched := 0
	for w := range queryWords {
		if strings.Contains(lowerText, w) {
			matched++
		}
	}
	score := float64(matched) / float64(len(queryWords))
	if lowerQuery != "" && strings.Contains(lowerText, lowerQuery) {
		score += 0.5
	}
	if score > 1 {
		score = 1
	}
	return score
}

// Sections returns the number of corpus sections.
func (b *Base) Sections() int {
	return len(b.sections)
}

// Close releases the full-text index.
func (b *Base) Close() error {
	if b.index != nil {
		return b.index.Close()
	}
	return nil
}
