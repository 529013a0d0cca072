// Command validate_snapshots checks generated snapshot files against the
// pipeline's structural invariants: every file must load, the diff of a
// before/after pair must cover each holding exactly once, its summary must
// reconcile with the side totals, and distribution percentages must close
// to 100.
//
// Usage:
//
//	go run validate_snapshots.go -before before.json -after after.json
//	go run validate_snapshots.go -before snapshot.json
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/spergel/new-finance-sub001/internal/analytics"
	"github.com/spergel/new-finance-sub001/internal/diff"
	"github.com/spergel/new-finance-sub001/internal/models"
	"github.com/spergel/new-finance-sub001/internal/parsers"
)

type result struct {
	name   string
	passed bool
	detail string
}

func check(results []result, name string, passed bool, detail string) []result {
	return append(results, result{name: name, passed: passed, detail: detail})
}

func validateDistributions(results []result, holdings []*models.Holding) []result {
	total := analytics.TotalFairValue(holdings)
	for _, dist := range []struct {
		name    string
		buckets []analytics.Bucket
	}{
		{"industry distribution", analytics.GetIndustryDistribution(holdings)},
		{"investment type distribution", analytics.GetInvestmentTypeDistribution(holdings)},
	} {
		sum := 0.0
		count := 0
		for _, b := range dist.buckets {
			sum += b.Percentage
			count += b.Count
		}

		closed := total.IsZero() || math.Abs(sum-100) < 0.01
		results = check(results, dist.name+" closes to 100%", closed,
			fmt.Sprintf("sum=%.4f", sum))
		results = check(results, dist.name+" covers all holdings", count == len(holdings),
			fmt.Sprintf("bucketed=%d holdings=%d", count, len(holdings)))
	}
	return results
}

func validateDiff(results []result, before, after []*models.Holding) []result {
	changes := diff.ComputeDiff(before, after)

	beforeSeen, afterSeen := 0, 0
	for _, c := range changes {
		if c.Before != nil {
			beforeSeen++
		}
		if c.After != nil {
			afterSeen++
		}
	}
	results = check(results, "diff partition is complete",
		beforeSeen == len(before) && afterSeen == len(after),
		fmt.Sprintf("before %d/%d, after %d/%d", beforeSeen, len(before), afterSeen, len(after)))

	summary := diff.Summarize(changes)
	expectedNet := summary.TotalAfter.FairValue.Sub(summary.TotalBefore.FairValue)
	results = check(results, "net delta reconciles with side totals",
		summary.NetFairValueDelta.Equal(expectedNet),
		fmt.Sprintf("net=%s expected=%s", summary.NetFairValueDelta, expectedNet))

	selfChanges := diff.ComputeDiff(before, before)
	clean := true
	for _, c := range selfChanges {
		if c.Type != diff.ChangeUnchanged {
			clean = false
			break
		}
	}
	results = check(results, "self-diff reports no changes", clean, "")

	return results
}

func main() {
	var (
		beforeFile = flag.String("before", "", "Snapshot file to validate (required)")
		afterFile  = flag.String("after", "", "Optional second snapshot for diff validation")
	)
	flag.Parse()

	if *beforeFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	before, stats, err := parsers.LoadSnapshot(*beforeFile, nil)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *beforeFile, err)
	}
	fmt.Printf("Loaded %s: %d parsed, %d skipped (%s)\n",
		*beforeFile, stats.RecordsParsed, stats.RecordsSkipped, stats.Format)

	var results []result
	results = validateDistributions(results, before)

	if *afterFile != "" {
		after, afterStats, err := parsers.LoadSnapshot(*afterFile, nil)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *afterFile, err)
		}
		fmt.Printf("Loaded %s: %d parsed, %d skipped (%s)\n",
			*afterFile, afterStats.RecordsParsed, afterStats.RecordsSkipped, afterStats.Format)

		results = validateDiff(results, before, after)
	}

	failures := 0
	for _, r := range results {
		status := "PASS"
		if !r.passed {
			status = "FAIL"
			failures++
		}
		line := fmt.Sprintf("[%s] %s", status, r.name)
		if r.detail != "" {
			line += " (" + r.detail + ")"
		}
		fmt.Println(line)
	}

	if failures > 0 {
		fmt.Printf("\n%d of %d checks failed\n", failures, len(results))
		os.Exit(1)
	}
	fmt.Printf("\nAll %d checks passed\n", len(results))
}
