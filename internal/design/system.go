package design

import "strings"

// Recommendations holds the top pick per domain, plus the top charts and ux
// guidelines.
type Recommendations struct {
	Product        map[string]string   `json:"product"`
	Style          map[string]string   `json:"style"`
	ColorPalette   map[string]string   `json:"color_palette"`
	Typography     map[string]string   `json:"typography"`
	LandingPattern map[string]string   `json:"landing_pattern"`
	Charts         []map[string]string `json:"charts"`
	UXGuidelines   []map[string]string `json:"ux_guidelines"`
}

// Alternatives holds the runner-up picks per domain.
type Alternatives struct {
	Products        []map[string]string `json:"products"`
	Styles          []map[string]string `json:"styles"`
	Colors          []map[string]string `json:"colors"`
	Typography      []map[string]string `json:"typography"`
	LandingPatterns []map[string]string `json:"landing_patterns"`
}

// ChecklistItem is one pre-delivery check derived from a ux guideline row.
type ChecklistItem struct {
	Item     string `json:"item"`
	Rule     string `json:"rule"`
	Category string `json:"category"`
}

// System is a complete design-system recommendation for one query.
type System struct {
	ProjectName     string          `json:"project_name"`
	Query           string          `json:"query"`
	Recommendations Recommendations `json:"recommendations"`
	Alternatives    Alternatives    `json:"alternatives"`
	AntiPatterns    []string        `json:"anti_patterns"`
	Checklist       []ChecklistItem `json:"checklist"`
}

// DesignSystem searches every domain for the query and assembles a full
// recommendation: the best hit per domain, runner-up alternatives, the
// anti-patterns the top products warn against, and a checklist built from
// the matching ux guidelines.
func (e *SearchEngine) DesignSystem(query, projectName string) (*System, error) {
	product, err := e.Search(query, "product", 3)
	if err != nil {
		return nil, err
	}
	style, err := e.Search(query, "style", 3)
	if err != nil {
		return nil, err
	}
	color, err := e.Search(query, "color", 3)
	if err != nil {
		return nil, err
	}
	typography, err := e.Search(query, "typography", 3)
	if err != nil {
		return nil, err
	}
	landing, err := e.Search(query, "landing", 3)
	if err != nil {
		return nil, err
	}
	charts, err := e.Search(query, "chart", 5)
	if err != nil {
		return nil, err
	}
	ux, err := e.Search(query, "ux", 5)
	if err != nil {
		return nil, err
	}

	sys := &System{
		ProjectName: projectName,
		Query:       query,
		Recommendations: Recommendations{
			Product:        topFields(product),
			Style:          topFields(style),
			ColorPalette:   topFields(color),
			Typography:     topFields(typography),
			LandingPattern: topFields(landing),
			Charts:         allFields(cap3(charts)),
			UXGuidelines:   allFields(ux),
		},
		Alternatives: Alternatives{
			Products:        allFields(runnersUp(product)),
			Styles:          allFields(runnersUp(style)),
			Colors:          allFields(runnersUp(color)),
			Typography:      allFields(runnersUp(typography)),
			LandingPatterns: allFields(runnersUp(landing)),
		},
		AntiPatterns: extractAntiPatterns(product),
		Checklist:    buildChecklist(ux),
	}
	return sys, nil
}

// extractAntiPatterns collects the semicolon-separated anti_patterns fields
// of the two best product hits, deduplicated in first-seen order, capped at
// five.
func extractAntiPatterns(products []Result) []string {
	seen := make(map[string]bool)
	patterns := []string{}
	for _, r := range top2(products) {
		for _, p := range strings.Split(r.Fields["anti_patterns"], ";") {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			patterns = append(patterns, p)
			if len(patterns) == 5 {
				return patterns
			}
		}
	}
	return patterns
}

// buildChecklist turns ux guideline rows into checklist items. Rows missing
// a guideline name or rule are skipped; a missing category defaults to
// "general".
func buildChecklist(ux []Result) []ChecklistItem {
	checklist := []ChecklistItem{}
	for _, r := range ux {
		name := r.Fields["guideline_name"]
		rule := r.Fields["rule"]
		if name == "" || rule == "" {
			continue
		}
		category := r.Fields["category"]
		if category == "" {
			category = "general"
		}
		checklist = append(checklist, ChecklistItem{Item: name, Rule: rule, Category: category})
	}
	return checklist
}

func topFields(results []Result) map[string]string {
	if len(results) == 0 {
		return map[string]string{}
	}
	return results[0].Fields
}

func runnersUp(results []Result) []Result {
	if len(results) <= 1 {
		return nil
	}
	if len(results) > 3 {
		results = results[:3]
	}
	return results[1:]
}

func top2(results []Result) []Result {
	if len(results) > 2 {
		return results[:2]
	}
	return results
}

func cap3(results []Result) []Result {
	if len(results) > 3 {
		return results[:3]
	}
	return results
}

func allFields(results []Result) []map[string]string {
	fields := []map[string]string{}
	for _, r := range results {
		fields = append(fields, r.Fields)
	}
	return fields
}
