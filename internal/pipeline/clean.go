package pipeline

import (
	"fmt"
	"time"

	"econ-pipeline/internal/model"
	"econ-pipeline/pkg/utils"
)

// Drop reasons reported by the cleaner and feature engineer.
const (
	DropMissingField         = "missing_required_field"
	DropNonPositivePop       = "nonpositive_population"
	DropNonPositiveTotalGDP  = "nonpositive_total_gdp"
	DropNonPositiveGNI       = "nonpositive_gni_per_capita"
	DropDuplicateCountryYear = "duplicate_country_year"
)

// Clean turns raw rows into typed records, dropping rows that cannot feed the
// downstream stages. Drops are never errors; each one is counted per reason in
// the returned audit. The operation is deterministic: identical input yields
// identical output and identical drop counts.
//
// Policy:
//   - any required field missing or non-numeric → dropped
//   - population <= 0 or total GDP <= 0 → dropped (derived ratios undefined)
//   - GNI per capita <= 0 → dropped (income group undefined)
//   - repeated (country, year) → first occurrence wins, later ones dropped
func Clean(rows []RawRow) ([]model.Record, model.StageAudit) {
	start := time.Now()
	audit := model.StageAudit{Stage: "clean", InputCount: len(rows)}

	seen := make(map[string]bool, len(rows))
	records := make([]model.Record, 0, len(rows))

	for _, row := range rows {
		rec, ok := parseRecord(row)
		if !ok {
			audit.Drop(DropMissingField)
			continue
		}
		switch {
		case rec.Population <= 0:
			audit.Drop(DropNonPositivePop)
			continue
		case rec.TotalGDP <= 0:
			audit.Drop(DropNonPositiveTotalGDP)
			continue
		case rec.GNIPerCapita <= 0:
			audit.Drop(DropNonPositiveGNI)
			continue
		}

		key := fmt.Sprintf("%s\x00%d", rec.Country, rec.Year)
		if seen[key] {
			audit.Drop(DropDuplicateCountryYear)
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}

	audit.KeptCount = len(records)
	audit.Duration = time.Since(start)
	fmt.Printf("🔍 Clean: %d kept, %d dropped of %d rows\n", audit.KeptCount, audit.DroppedCount, audit.InputCount)
	return records, audit
}

func parseRecord(row RawRow) (model.Record, bool) {
	var rec model.Record

	country, ok := row[model.FieldCountry]
	if !ok {
		return rec, false
	}
	year, ok := utils.ParseYear(row[model.FieldYear])
	if !ok {
		return rec, false
	}

	rec.Country = country
	rec.Year = year

	numeric := []struct {
		field string
		dst   *float64
	}{
		{model.FieldGDP, &rec.GDP},
		{model.FieldPopulation, &rec.Population},
		{model.FieldGNIPerCapita, &rec.GNIPerCapita},
		{model.FieldAgriculture, &rec.Agriculture},
		{model.FieldManufacturing, &rec.Manufacturing},
		{model.FieldTransportComm, &rec.TransportComm},
		{model.FieldTotalGDP, &rec.TotalGDP},
	}
	for _, n := range numeric {
		v, ok := utils.ParseFloat(row[n.field])
		if !ok {
			return rec, false
		}
		*n.dst = v
	}
	return rec, true
}
