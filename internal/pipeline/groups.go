package pipeline

import (
	"sort"

	"econ-pipeline/internal/model"
)

// GroupSummary is one aggregated group handed to visualization consumers.
type GroupSummary struct {
	GroupKey        string  `json:"group_key"`   // "income_group", "country", "income_group_year"
	GroupValue      string  `json:"group_value"` // e.g. "Lower-Middle" or a country name
	Year            int     `json:"year,omitempty"`
	RecordCount     int     `json:"record_count"`
	MeanGDPPerCap   float64 `json:"mean_gdp_per_capita"`
	MeanAgriShare   float64 `json:"mean_agriculture_share"`
	MeanManufShare  float64 `json:"mean_manufacturing_share"`
	MeanTranspShare float64 `json:"mean_transport_comm_share"`
}

func summarize(key, value string, year int, recs []model.EngineeredRecord) GroupSummary {
	s := GroupSummary{GroupKey: key, GroupValue: value, Year: year, RecordCount: len(recs)}
	for _, r := range recs {
		s.MeanGDPPerCap += r.GDPPerCapita
		s.MeanAgriShare += r.AgricultureShare
		s.MeanManufShare += r.ManufacturingShare
		s.MeanTranspShare += r.TransportCommShare
	}
	if n := float64(len(recs)); n > 0 {
		s.MeanGDPPerCap /= n
		s.MeanAgriShare /= n
		s.MeanManufShare /= n
		s.MeanTranspShare /= n
	}
	return s
}

// SummarizeByIncomeGroup aggregates the dataset per income group, ordered by
// descending mean GDP per capita.
func SummarizeByIncomeGroup(ds *model.Dataset) []GroupSummary {
	groups := ds.ByIncomeGroup()
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range model.IncomeGroups {
		if recs, ok := groups[g]; ok {
			out = append(out, summarize("income_group", string(g), 0, recs))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeanGDPPerCap > out[j].MeanGDPPerCap
	})
	return out
}

// SummarizeByCountry aggregates the dataset per country, sorted by country.
func SummarizeByCountry(ds *model.Dataset) []GroupSummary {
	byCountry := ds.ByCountry()
	out := make([]GroupSummary, 0, len(byCountry))
	for _, c := range ds.Countries() {
		out = append(out, summarize("country", c, 0, byCountry[c]))
	}
	return out
}

// SummarizeByIncomeGroupYear aggregates per (year, income group), ordered by
// year then group. This is the shape the over-time line visualization wants.
func SummarizeByIncomeGroupYear(ds *model.Dataset) []GroupSummary {
	type key struct {
		year  int
		group model.IncomeGroup
	}
	buckets := make(map[key][]model.EngineeredRecord)
	for _, r := range ds.Records() {
		k := key{year: r.Year, group: r.IncomeGroup}
		buckets[k] = append(buckets[k], r)
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	groupRank := make(map[model.IncomeGroup]int, len(model.IncomeGroups))
	for i, g := range model.IncomeGroups {
		groupRank[g] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return groupRank[keys[i].group] < groupRank[keys[j].group]
	})

	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, summarize("income_group_year", string(k.group), k.year, buckets[k]))
	}
	return out
}

// ComparableCountries selects countries whose mean population lies in
// [minPop, maxPop], up to perGroup per income group, ordered High income
// first. A country's income group is the group of its latest observation.
// The selection feeds the comparative facet visualization.
func ComparableCountries(ds *model.Dataset, minPop, maxPop float64, perGroup int) []string {
	byCountry := ds.ByCountry()

	type candidate struct {
		country string
		group   model.IncomeGroup
	}
	var candidates []candidate
	for _, c := range ds.Countries() {
		recs := byCountry[c]
		var popSum float64
		for _, r := range recs {
			popSum += r.Population
		}
		meanPop := popSum / float64(len(recs))
		if meanPop < minPop || meanPop > maxPop {
			continue
		}
		// recs are year-ordered; the latest observation sets the group
		candidates = append(candidates, candidate{country: c, group: recs[len(recs)-1].IncomeGroup})
	}

	var selected []string
	for i := len(model.IncomeGroups) - 1; i >= 0; i-- {
		group := model.IncomeGroups[i]
		taken := 0
		for _, cand := range candidates {
			if cand.group == group && taken < perGroup {
				selected = append(selected, cand.country)
				taken++
			}
		}
	}
	return selected
}
