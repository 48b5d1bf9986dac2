package design

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, "charts.csv",
		"chart_name,use_case\n"+
			"Timeseries,call volume over time trends\n"+
			"Donut,plan distribution share\n"+
			"Bar,category comparison volume\n")
	writeCSV(t, dir, "colors.csv",
		"palette,mood\n"+
			"Ocean Blue,calm trust volume\n"+
			"Sunset,energy warmth\n")
	return dir
}

func TestSearch_RanksByScore(t *testing.T) {
	e := NewSearchEngine(testDataDir(t))

	results, err := e.Search("volume trends", "chart", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Timeseries", results[0].Fields["chart_name"])
	for _, r := range results {
		assert.Equal(t, "chart", r.Domain)
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestSearch_AllDomains(t *testing.T) {
	e := NewSearchEngine(testDataDir(t))

	results, err := e.Search("volume", "", 10)
	require.NoError(t, err)

	domains := map[string]bool{}
	for _, r := range results {
		domains[r.Domain] = true
	}
	assert.True(t, domains["chart"])
	assert.True(t, domains["color"])
}

func TestSearch_MissingDatabaseYieldsNoHits(t *testing.T) {
	e := NewSearchEngine(testDataDir(t))

	results, err := e.Search("anything", "ux", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_UnknownDomain(t *testing.T) {
	e := NewSearchEngine(testDataDir(t))

	_, err := e.Search("anything", "nonsense", 10)
	assert.Error(t, err)
}

func TestSearch_LimitsResults(t *testing.T) {
	e := NewSearchEngine(testDataDir(t))

	results, err := e.Search("volume", "", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_ParseErrorSurfacesOnEveryCall(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "charts.csv", "chart_name,use_case\n\"Timeseries,broken row\n")
	e := NewSearchEngine(dir)

	_, err := e.Search("anything", "chart", 10)
	require.ErrorContains(t, err, "charts.csv")

	// The failed load must not be cached as an empty domain.
	_, err = e.Search("anything", "chart", 10)
	assert.ErrorContains(t, err, "charts.csv")
}
