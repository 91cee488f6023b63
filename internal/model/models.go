package model

import "sort"

// Sector identifies one of the tracked economic sectors.
type Sector string

const (
	SectorAgriculture   Sector = "agriculture"
	SectorManufacturing Sector = "manufacturing"
	SectorTransportComm Sector = "transport_comm"
)

// Sectors lists the tracked sectors in canonical order.
var Sectors = []Sector{SectorAgriculture, SectorManufacturing, SectorTransportComm}

// IncomeGroup is the World-Bank-style income classification of a country-year.
type IncomeGroup string

const (
	IncomeLow         IncomeGroup = "Low"
	IncomeLowerMiddle IncomeGroup = "Lower-Middle"
	IncomeUpperMiddle IncomeGroup = "Upper-Middle"
	IncomeHigh        IncomeGroup = "High"
)

// IncomeGroups lists the groups in ascending order of GNI per capita.
var IncomeGroups = []IncomeGroup{IncomeLow, IncomeLowerMiddle, IncomeUpperMiddle, IncomeHigh}

// Record is one country-year observation as loaded from the source table.
// Currency fields are current US dollars; Population is a head count.
// Records are immutable once loaded.
type Record struct {
	Country       string  `json:"country"`
	Year          int     `json:"year"`
	GDP           float64 `json:"gdp"`
	Population    float64 `json:"population"`
	GNIPerCapita  float64 `json:"gni_per_capita"`
	Agriculture   float64 `json:"agriculture"`
	Manufacturing float64 `json:"manufacturing"`
	TransportComm float64 `json:"transport_comm"`
	TotalGDP      float64 `json:"total_gdp"`
}

// EngineeredRecord is a Record plus the derived indicators computed by the
// feature-engineering stage. Shares are fractions of total GDP in [0, 1].
type EngineeredRecord struct {
	Record

	GDPPerCapita       float64     `json:"gdp_per_capita"`
	AgricultureShare   float64     `json:"agriculture_share"`
	ManufacturingShare float64     `json:"manufacturing_share"`
	TransportCommShare float64     `json:"transport_comm_share"`
	IncomeGroup        IncomeGroup `json:"income_group"`
}

// Share returns the share of total GDP for the given sector.
func (r EngineeredRecord) Share(s Sector) (float64, bool) {
	switch s {
	case SectorAgriculture:
		return r.AgricultureShare, true
	case SectorManufacturing:
		return r.ManufacturingShare, true
	case SectorTransportComm:
		return r.TransportCommShare, true
	}
	return 0, false
}

// Dataset is the immutable collection of engineered records, ordered by
// (country, year) and unique on that pair. It is constructed once per load
// and shared read-only by the model fitter and visualization consumers.
type Dataset struct {
	records []EngineeredRecord
}

// NewDataset builds a Dataset from engineered records, sorting them into
// (country, year) order. Callers are expected to have removed duplicate
// (country, year) pairs already; the cleaner enforces that.
func NewDataset(records []EngineeredRecord) *Dataset {
	sorted := make([]EngineeredRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Country != sorted[j].Country {
			return sorted[i].Country < sorted[j].Country
		}
		return sorted[i].Year < sorted[j].Year
	})
	return &Dataset{records: sorted}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns the records in (country, year) order.
// The returned slice must be treated as read-only.
func (d *Dataset) Records() []EngineeredRecord { return d.records }

// At returns the record at index i.
func (d *Dataset) At(i int) EngineeredRecord { return d.records[i] }

// Countries returns the distinct country identifiers in sorted order.
func (d *Dataset) Countries() []string {
	var out []string
	for i, r := range d.records {
		if i == 0 || r.Country != d.records[i-1].Country {
			out = append(out, r.Country)
		}
	}
	return out
}

// ByCountry groups records per country, year order preserved.
func (d *Dataset) ByCountry() map[string][]EngineeredRecord {
	out := make(map[string][]EngineeredRecord)
	for _, r := range d.records {
		out[r.Country] = append(out[r.Country], r)
	}
	return out
}

// ByIncomeGroup groups records per income group. Within each group the
// (country, year) ordering of the dataset is preserved.
func (d *Dataset) ByIncomeGroup() map[IncomeGroup][]EngineeredRecord {
	out := make(map[IncomeGroup][]EngineeredRecord)
	for _, r := range d.records {
		out[r.IncomeGroup] = append(out[r.IncomeGroup], r)
	}
	return out
}
