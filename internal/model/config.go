package model

// Canonical field names used by the schema mapping and the cleaner.
const (
	FieldCountry       = "country"
	FieldYear          = "year"
	FieldGDP           = "gdp"
	FieldPopulation    = "population"
	FieldGNIPerCapita  = "gni_per_capita"
	FieldAgriculture   = "agriculture"
	FieldManufacturing = "manufacturing"
	FieldTransportComm = "transport_comm"
	FieldTotalGDP      = "total_gdp"
)

// RequiredFields lists the canonical columns every usable row must carry.
var RequiredFields = []string{
	FieldCountry, FieldYear, FieldGDP, FieldPopulation, FieldGNIPerCapita,
	FieldAgriculture, FieldManufacturing, FieldTransportComm, FieldTotalGDP,
}

// Engineered variable names accepted as regression dependent/predictors.
const (
	VarGDPPerCapita       = "gdp_per_capita"
	VarGNIPerCapita       = "gni_per_capita"
	VarAgricultureShare   = "agriculture_share"
	VarManufacturingShare = "manufacturing_share"
	VarTransportCommShare = "transport_comm_share"
)

// SchemaMapping maps canonical field names to raw column headers. Headers are
// matched case-insensitively after whitespace normalization, so the values
// here only need to identify the column, not reproduce its exact casing.
type SchemaMapping map[string]string

// DefaultSchema matches the UN "Global Economy Indicators" export headers.
func DefaultSchema() SchemaMapping {
	return SchemaMapping{
		FieldCountry:       "Country",
		FieldYear:          "Year",
		FieldGDP:           "Gross Domestic Product (GDP)",
		FieldPopulation:    "Population",
		FieldGNIPerCapita:  "Per capita GNI",
		FieldAgriculture:   "Agriculture, hunting, forestry, fishing (ISIC A-B)",
		FieldManufacturing: "Manufacturing (ISIC D)",
		FieldTransportComm: "Transport, storage and communication (ISIC I)",
		FieldTotalGDP:      "Total GDP",
	}
}

// Merge overlays non-empty overrides onto the mapping and returns the result.
func (m SchemaMapping) Merge(overrides SchemaMapping) SchemaMapping {
	out := make(SchemaMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// IncomeBoundaries are the fixed ascending GNI-per-capita thresholds (USD)
// separating the four income groups. A value exactly on a boundary classifies
// into the lower group.
type IncomeBoundaries struct {
	Low         float64 `json:"low"`         // b1: Low if GNI <= b1
	LowerMiddle float64 `json:"lowerMiddle"` // b2: Lower-Middle if b1 < GNI <= b2
	UpperMiddle float64 `json:"upperMiddle"` // b3: Upper-Middle if b2 < GNI <= b3, High above
}

// DefaultIncomeBoundaries are the World-Bank-style thresholds used by the
// original analysis (FY2025 operational cutoffs).
func DefaultIncomeBoundaries() IncomeBoundaries {
	return IncomeBoundaries{Low: 1145, LowerMiddle: 4515, UpperMiddle: 14005}
}

// Validate checks that the boundaries are positive and strictly ascending.
func (b IncomeBoundaries) Validate() error {
	if b.Low <= 0 {
		return NewConfigurationError("incomeBoundaries", "low boundary must be positive, got %v", b.Low)
	}
	if !(b.Low < b.LowerMiddle && b.LowerMiddle < b.UpperMiddle) {
		return NewConfigurationError("incomeBoundaries",
			"boundaries must be strictly ascending, got %v < %v < %v", b.Low, b.LowerMiddle, b.UpperMiddle)
	}
	return nil
}

// Export defines export targets for a run.
type Export struct {
	DB   string `json:"db"`   // sqlite database path, empty to skip
	File string `json:"file"` // engineered dataset CSV name, empty to skip
}

// AnalysisSpec is the full configuration of one analysis run.
type AnalysisSpec struct {
	Input      string            `json:"input"`                // path or URL of the raw CSV
	Schema     SchemaMapping     `json:"schema,omitempty"`     // overrides on DefaultSchema
	Boundaries *IncomeBoundaries `json:"boundaries,omitempty"` // nil → defaults
	Dependent  string            `json:"dependent"`            // empty → gdp_per_capita
	Predictors []string          `json:"predictors"`           // empty → the three sector shares
	Models     []string          `json:"models"`               // subset of {ols, panel_fe}; empty → both
	Export     *Export           `json:"export,omitempty"`
	OutputDir  string            `json:"outputDir"` // base directory for run outputs
}

// Model identifiers.
const (
	ModelOLS     = "ols"
	ModelPanelFE = "panel_fe"
)

var knownVariables = map[string]bool{
	VarGDPPerCapita:       true,
	VarGNIPerCapita:       true,
	VarAgricultureShare:   true,
	VarManufacturingShare: true,
	VarTransportCommShare: true,
}

// Normalize fills defaults in place.
func (s *AnalysisSpec) Normalize() {
	if s.Dependent == "" {
		s.Dependent = VarGDPPerCapita
	}
	if len(s.Predictors) == 0 {
		s.Predictors = []string{VarAgricultureShare, VarManufacturingShare, VarTransportCommShare}
	}
	if len(s.Models) == 0 {
		s.Models = []string{ModelOLS, ModelPanelFE}
	}
	if s.Boundaries == nil {
		b := DefaultIncomeBoundaries()
		s.Boundaries = &b
	}
}

// Validate checks the spec after Normalize. All violations are
// ConfigurationErrors and abort the run before any computation.
func (s *AnalysisSpec) Validate() error {
	if s.Input == "" {
		return NewConfigurationError("input", "input path is required")
	}
	if err := s.Boundaries.Validate(); err != nil {
		return err
	}
	if !knownVariables[s.Dependent] {
		return NewConfigurationError("dependent", "unknown variable %q", s.Dependent)
	}
	seen := make(map[string]bool, len(s.Predictors))
	for _, p := range s.Predictors {
		if !knownVariables[p] {
			return NewConfigurationError("predictors", "unknown variable %q", p)
		}
		if p == s.Dependent {
			return NewConfigurationError("predictors", "%q is already the dependent variable", p)
		}
		if seen[p] {
			return NewConfigurationError("predictors", "duplicate predictor %q", p)
		}
		seen[p] = true
	}
	for _, m := range s.Models {
		if m != ModelOLS && m != ModelPanelFE {
			return NewConfigurationError("models", "unknown model %q", m)
		}
	}
	return nil
}
