package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// tokenTextAnalyzer splits on unicode word boundaries and lowercases, with
// no stemming or stop words. The indexed fields are already normalizer
// output, so the analyzer must keep every token as-is, digits included
// (year tokens like "2016" have to survive both indexing and querying).
const tokenTextAnalyzer = "token_text"

// buildIndexMapping creates the Bleve mapping for fallback documents.
// The id field is keyword-analyzed and never searched.
func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()
	err := indexMapping.AddCustomAnalyzer(tokenTextAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = tokenTextAnalyzer

	docMapping := bleve.NewDocumentMapping()

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.Index = false
	docMapping.AddFieldMappingsAt("id", idField)

	textField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = tokenTextAnalyzer
		f.Store = false
		return f
	}

	for _, field := range []string{
		"name", "role", "program", "production", "festival", "location",
		"bio", "status", "identity", "season", "language", "alias",
	} {
		docMapping.AddFieldMappingsAt(field, textField())
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}
