// repairctl is a development harness around the repair engine: it reads a
// candidate dashboard spec, runs the repair pass, and prints the repaired
// spec. It also exposes the design database search. The engine itself is a
// library; nothing here is part of its contract.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/agencykit/specforge/internal/audit"
	"github.com/agencykit/specforge/internal/dashspec"
	"github.com/agencykit/specforge/internal/design"
	"github.com/agencykit/specforge/internal/repair"
	"github.com/agencykit/specforge/internal/ruleset"
	"github.com/agencykit/specforge/internal/skeleton"
	"github.com/agencykit/specforge/internal/storage/postgres"
	"github.com/agencykit/specforge/internal/tokens"
	"github.com/agencykit/specforge/internal/version"
)

func main() {
	var (
		specPath     = flag.String("spec", "-", "candidate spec JSON file, or - for stdin")
		tokensPath   = flag.String("tokens", "", "design tokens YAML file")
		skeletonPath = flag.String("skeletons", "", "skeleton catalog YAML file")
		rulesetPath  = flag.String("ruleset", "", "ruleset YAML file overriding built-in tables")
		searchQuery  = flag.String("search", "", "search the design databases instead of repairing")
		searchDomain = flag.String("domain", "", "restrict design search to one domain")
		designSystem = flag.Bool("design-system", false, "generate a full design system from the -search query")
		projectName  = flag.String("project", "Project", "project name for -design-system output")
		dataDir      = flag.String("data", "data/design", "design database directory")
		limit        = flag.Int("limit", 10, "maximum design search results")
		workspaceID  = flag.String("workspace", "", "persist audit records to Postgres under this workspace id")
		history      = flag.Int("history", 0, "print the last N persisted audit records and exit (requires -workspace)")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Version)
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	audit.SetLogger(logger)

	var pg *postgres.Client
	if *workspaceID != "" {
		pg, err = postgres.New(*workspaceID)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pg.Close()
		audit.SetSink(pg)
	}

	if *history > 0 {
		if pg == nil {
			logger.Fatal("-history requires -workspace")
		}
		runHistory(logger, pg, *history)
		return
	}

	if *searchQuery != "" {
		if *designSystem {
			runDesignSystem(logger, *dataDir, *searchQuery, *projectName)
			return
		}
		runSearch(logger, *dataDir, *searchQuery, *searchDomain, *limit)
		return
	}

	runRepair(logger, *specPath, *tokensPath, *skeletonPath, *rulesetPath)
}

func runHistory(logger *zap.Logger, pg *postgres.Client, limit int) {
	records, err := pg.Query(limit)
	if err != nil {
		logger.Fatal("failed to query audit history", zap.Error(err))
	}
	printJSON(records)
}

func runDesignSystem(logger *zap.Logger, dataDir, query, projectName string) {
	engine := design.NewSearchEngine(dataDir)
	sys, err := engine.DesignSystem(query, projectName)
	if err != nil {
		logger.Fatal("design system generation failed", zap.Error(err))
	}
	printJSON(sys)
}

func runSearch(logger *zap.Logger, dataDir, query, domain string, limit int) {
	engine := design.NewSearchEngine(dataDir)
	results, err := engine.Search(query, domain, limit)
	if err != nil {
		logger.Fatal("design search failed", zap.Error(err))
	}
	printJSON(map[string]interface{}{
		"query":   query,
		"domain":  orAll(domain),
		"results": results,
	})
}

func runRepair(logger *zap.Logger, specPath, tokensPath, skeletonPath, rulesetPath string) {
	data, err := readSpec(specPath)
	if err != nil {
		logger.Fatal("failed to read spec", zap.Error(err))
	}
	spec, err := dashspec.Parse(data)
	if err != nil {
		logger.Fatal("failed to parse spec", zap.Error(err))
	}

	var opts []repair.Option
	if tokensPath != "" {
		t, err := tokens.Load(tokensPath)
		if err != nil {
			logger.Fatal("failed to load tokens", zap.Error(err))
		}
		opts = append(opts, repair.WithTokens(t))
	}
	if skeletonPath != "" {
		cat, err := skeleton.LoadCatalog(skeletonPath)
		if err != nil {
			logger.Fatal("failed to load skeleton catalog", zap.Error(err))
		}
		opts = append(opts, repair.WithSkeletons(cat))
	}
	if rulesetPath != "" {
		rs, err := ruleset.Load(rulesetPath)
		if err != nil {
			logger.Fatal("failed to load ruleset", zap.Error(err))
		}
		opts = append(opts, repair.WithRuleset(rs))
	}

	start := time.Now()
	result := repair.New(opts...).Repair(spec)
	elapsed := time.Since(start)

	event := "repair.completed"
	if result.FixCount == 0 {
		event = "repair.noop"
	}
	if _, err := audit.Emit(event, spec.LayoutSkeletonID,
		len(result.Spec.Components), result.FixCount, result.Fixes, elapsed); err != nil {
		logger.Warn("audit emit failed", zap.Error(err))
	}

	for _, fix := range result.Fixes {
		logger.Info("fix applied", zap.String("fix", fix))
	}
	logger.Info("repair finished",
		zap.Int("components", len(result.Spec.Components)),
		zap.Int("fix_count", result.FixCount),
		zap.Duration("elapsed", elapsed))

	printJSON(result)
}

func readSpec(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		os.Exit(1)
	}
}

func orAll(domain string) string {
	if domain == "" {
		return "all"
	}
	return domain
}
