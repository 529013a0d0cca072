// Command snapshot_generator produces synthetic portfolio snapshot files
// for testing the diff and analytics pipeline.
//
// It can emit a single snapshot, or a before/after pair where the after
// snapshot is derived from the before one by dropping, adding, and remarking
// holdings at configurable rates. Generation is seeded for reproducibility.
//
// Usage:
//
//	go run snapshot_generator.go -output before.json -count 100 -seed 42
//	go run snapshot_generator.go -output before.json -after after.json \
//	    -count 100 -drop-rate 0.05 -add-rate 0.05 -remark-rate 0.30
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var companyStems = []string{
	"Apex", "Summit", "Granite", "Harbor", "Pinnacle", "Sterling", "Cascade",
	"Meridian", "Frontier", "Beacon", "Crescent", "Ridgeline", "Atlas",
	"Keystone", "Lakeshore", "Northwind", "Ironwood", "Bluepeak", "Redstone",
	"Silverlake",
}

var companySuffixes = []string{
	"Holdings", "Industries", "Group", "Partners", "Technologies",
	"Systems", "Brands", "Services", "Solutions",
}

var industries = []string{
	"Software", "Healthcare Providers", "Business Services",
	"Specialty Chemicals", "Consumer Products", "Aerospace & Defense",
	"Media", "Insurance Services", "Distribution", "Food & Beverage",
}

var investmentTypes = []string{
	"First Lien Term Loan", "Second Lien Term Loan", "Senior Secured Notes",
	"Subordinated Debt", "Revolver", "Preferred Equity", "Common Equity",
}

type snapshotRecord struct {
	CompanyName     string  `json:"company_name"`
	InvestmentType  string  `json:"investment_type"`
	Industry        string  `json:"industry"`
	FairValue       string  `json:"fair_value"`
	Cost            string  `json:"cost,omitempty"`
	PrincipalAmount string  `json:"principal_amount,omitempty"`
	Spread          float64 `json:"spread,omitempty"`
	FloorRate       float64 `json:"floor_rate,omitempty"`
	PIK             bool    `json:"pik,omitempty"`
	PIKRate         float64 `json:"pik_rate,omitempty"`
	MaturityDate    string  `json:"maturity_date,omitempty"`
}

type generator struct {
	rng    *rand.Rand
	period time.Time
}

func (g *generator) company(i int) string {
	stem := companyStems[i%len(companyStems)]
	suffix := companySuffixes[(i/len(companyStems))%len(companySuffixes)]
	if i >= len(companyStems)*len(companySuffixes) {
		return fmt.Sprintf("%s %s %d", stem, suffix, i)
	}
	return stem + " " + suffix
}

func (g *generator) record(i int) snapshotRecord {
	investmentType := investmentTypes[g.rng.Intn(len(investmentTypes))]
	isDebt := !strings.Contains(investmentType, "Equity")

	rec := snapshotRecord{
		CompanyName:    g.company(i),
		InvestmentType: investmentType,
		Industry:       industries[g.rng.Intn(len(industries))],
	}

	if isDebt {
		principal := decimal.NewFromFloat(1 + g.rng.Float64()*49).Round(2).Mul(decimal.NewFromInt(1_000_000))
		// Marks cluster near par with an occasional discount.
		markRatio := 0.97 + g.rng.Float64()*0.06
		if g.rng.Float64() < 0.10 {
			markRatio = 0.60 + g.rng.Float64()*0.30
		}
		fv := principal.Mul(decimal.NewFromFloat(markRatio)).Round(2)

		rec.PrincipalAmount = principal.String()
		rec.FairValue = fv.String()
		rec.Cost = principal.Mul(decimal.NewFromFloat(0.98 + g.rng.Float64()*0.02)).Round(2).String()
		rec.Spread = float64(int(450+g.rng.Intn(600))) / 100
		if g.rng.Float64() < 0.6 {
			rec.FloorRate = 1.0
		}
		if g.rng.Float64() < 0.2 {
			rec.PIK = true
			rec.PIKRate = float64(int(100+g.rng.Intn(250))) / 100
		}
		maturity := g.period.AddDate(g.rng.Intn(7), g.rng.Intn(12), 0)
		rec.MaturityDate = maturity.Format("2006-01-02")
	} else {
		fv := decimal.NewFromFloat(0.5 + g.rng.Float64()*19.5).Round(2).Mul(decimal.NewFromInt(1_000_000))
		rec.FairValue = fv.String()
		rec.Cost = fv.Mul(decimal.NewFromFloat(0.5 + g.rng.Float64()*0.7)).Round(2).String()
	}

	return rec
}

// mutate derives an after-snapshot from a before-snapshot: a fraction of
// holdings are dropped, a fraction remarked, and new holdings appended.
func (g *generator) mutate(before []snapshotRecord, dropRate, addRate, remarkRate float64) []snapshotRecord {
	var after []snapshotRecord

	for _, rec := range before {
		if g.rng.Float64() < dropRate {
			continue
		}
		if g.rng.Float64() < remarkRate {
			fv, err := decimal.NewFromString(rec.FairValue)
			if err == nil {
				shift := 0.93 + g.rng.Float64()*0.14
				rec.FairValue = fv.Mul(decimal.NewFromFloat(shift)).Round(2).String()
			}
		}
		after = append(after, rec)
	}

	added := int(float64(len(before)) * addRate)
	for i := 0; i < added; i++ {
		after = append(after, g.record(len(before)+i))
	}

	return after
}

func writeSnapshot(path string, records []snapshotRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeCSV(file, records)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func writeCSV(file *os.File, records []snapshotRecord) error {
	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"company_name", "investment_type", "industry", "fair_value", "cost",
		"principal_amount", "spread", "floor_rate", "pik", "pik_rate", "maturity_date",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		pik := ""
		if rec.PIK {
			pik = "yes"
		}
		row := []string{
			rec.CompanyName, rec.InvestmentType, rec.Industry, rec.FairValue,
			rec.Cost, rec.PrincipalAmount,
			formatRate(rec.Spread), formatRate(rec.FloorRate),
			pik, formatRate(rec.PIKRate), rec.MaturityDate,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatRate(r float64) string {
	if r == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", r)
}

func main() {
	var (
		output     = flag.String("output", "snapshot.json", "Output file path (.json or .csv)")
		afterOut   = flag.String("after", "", "Optional derived after-snapshot path")
		count      = flag.Int("count", 100, "Number of holdings to generate")
		period     = flag.String("period", "2024-06-30", "Reporting period date (YYYY-MM-DD)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible generation")
		dropRate   = flag.Float64("drop-rate", 0.05, "Fraction of holdings dropped in the after snapshot")
		addRate    = flag.Float64("add-rate", 0.05, "Fraction of new holdings added in the after snapshot")
		remarkRate = flag.Float64("remark-rate", 0.30, "Fraction of holdings remarked in the after snapshot")
	)
	flag.Parse()

	periodDate, err := time.Parse("2006-01-02", *period)
	if err != nil {
		log.Fatalf("Invalid period date: %v", err)
	}

	g := &generator{
		rng:    rand.New(rand.NewSource(*seed)),
		period: periodDate,
	}

	records := make([]snapshotRecord, 0, *count)
	for i := 0; i < *count; i++ {
		records = append(records, g.record(i))
	}

	if err := writeSnapshot(*output, records); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}
	fmt.Printf("Generated %d holdings in %s (seed %d)\n", len(records), *output, *seed)

	if *afterOut != "" {
		after := g.mutate(records, *dropRate, *addRate, *remarkRate)
		if err := writeSnapshot(*afterOut, after); err != nil {
			log.Fatalf("Failed to write after snapshot: %v", err)
		}
		fmt.Printf("Derived %d holdings in %s\n", len(after), *afterOut)
	}
}
