// Package design provides keyword search over the product's CSV design
// databases (products, styles, colors, typography, landing pages, charts,
// ux guidelines).
package design

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// domainOrder fixes the multi-domain search order so result ordering is
// stable for equal scores.
var domainOrder = []string{"product", "style", "color", "typography", "landing", "chart", "ux"}

var domainFiles = map[string]string{
	"product":    "products.csv",
	"style":      "styles.csv",
	"color":      "colors.csv",
	"typography": "typography.csv",
	"landing":    "landing-pages.csv",
	"chart":      "charts.csv",
	"ux":         "ux-guidelines.csv",
}

// Result is one scored search hit.
type Result struct {
	Domain string            `json:"domain"`
	Score  float64           `json:"score"`
	Fields map[string]string `json:"content"`
}

// SearchEngine indexes the CSV databases lazily, one BM25 index per domain.
type SearchEngine struct {
	dataDir string
	indices map[string]*bm25Index
	docs    map[string][]map[string]string
}

// NewSearchEngine creates a search engine over the given data directory.
func NewSearchEngine(dataDir string) *SearchEngine {
	return &SearchEngine{
		dataDir: dataDir,
		indices: make(map[string]*bm25Index),
		docs:    make(map[string][]map[string]string),
	}
}

// Search scores the query against one domain, or all domains when domain is
// empty, and returns the top maxResults hits by descending score. Only
// positive scores are returned. A missing database file yields no hits for
// that domain, not an error.
func (e *SearchEngine) Search(query, domain string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	searchDomains := domainOrder
	if domain != "" {
		if _, ok := domainFiles[domain]; !ok {
			return nil, fmt.Errorf("unknown design domain: %s", domain)
		}
		searchDomains = []string{domain}
	}

	queryTokens := tokenize(query)
	var results []Result
	for _, d := range searchDomains {
		if err := e.ensureIndex(d); err != nil {
			return nil, err
		}
		idx := e.indices[d]
		if idx == nil {
			continue
		}
		for docID, doc := range e.docs[d] {
			score := idx.score(queryTokens, docID)
			if score <= 0 {
				continue
			}
			results = append(results, Result{Domain: d, Score: score, Fields: doc})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// ensureIndex builds the BM25 index for a domain on first use. A domain is
// only marked built once its database loads cleanly, so a parse error
// resurfaces on every call instead of being cached as an empty domain.
func (e *SearchEngine) ensureIndex(domain string) error {
	if _, built := e.indices[domain]; built {
		return nil
	}

	docs, err := e.loadDomain(domain)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		e.indices[domain] = nil
		return nil
	}

	corpus := make([][]string, len(docs))
	for i, doc := range docs {
		var parts []string
		for _, v := range doc {
			if v != "" {
				parts = append(parts, v)
			}
		}
		sort.Strings(parts) // map order is random; corpus must not be
		corpus[i] = tokenize(strings.Join(parts, " "))
	}

	e.docs[domain] = docs
	e.indices[domain] = newBM25Index(corpus)
	return nil
}

// loadDomain reads a domain's CSV into header-keyed rows.
func (e *SearchEngine) loadDomain(domain string) ([]map[string]string, error) {
	path := filepath.Join(e.dataDir, domainFiles[domain])
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open design database: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse design database %s: %w", domainFiles[domain], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	docs := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		doc := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				doc[col] = row[i]
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
