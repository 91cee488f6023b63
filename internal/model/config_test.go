package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeBoundariesValidate(t *testing.T) {
	assert.NoError(t, DefaultIncomeBoundaries().Validate())

	cases := []IncomeBoundaries{
		{Low: 0, LowerMiddle: 10, UpperMiddle: 20},
		{Low: -5, LowerMiddle: 10, UpperMiddle: 20},
		{Low: 10, LowerMiddle: 10, UpperMiddle: 20},
		{Low: 20, LowerMiddle: 10, UpperMiddle: 30},
		{Low: 10, LowerMiddle: 30, UpperMiddle: 20},
	}
	for _, b := range cases {
		err := b.Validate()
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr, "boundaries %+v", b)
		assert.Equal(t, "incomeBoundaries", cfgErr.Field)
	}
}

func TestAnalysisSpecNormalizeDefaults(t *testing.T) {
	spec := AnalysisSpec{Input: "data.csv"}
	spec.Normalize()

	assert.Equal(t, VarGDPPerCapita, spec.Dependent)
	assert.Equal(t, []string{VarAgricultureShare, VarManufacturingShare, VarTransportCommShare}, spec.Predictors)
	assert.Equal(t, []string{ModelOLS, ModelPanelFE}, spec.Models)
	require.NotNil(t, spec.Boundaries)
	assert.Equal(t, DefaultIncomeBoundaries(), *spec.Boundaries)
	assert.NoError(t, spec.Validate())
}

func TestAnalysisSpecValidateRejections(t *testing.T) {
	base := func() AnalysisSpec {
		s := AnalysisSpec{Input: "data.csv"}
		s.Normalize()
		return s
	}

	var cfgErr *ConfigurationError

	s := base()
	s.Input = ""
	require.ErrorAs(t, s.Validate(), &cfgErr)

	s = base()
	s.Dependent = "life_expectancy"
	require.ErrorAs(t, s.Validate(), &cfgErr)

	s = base()
	s.Predictors = []string{"services_share"}
	require.ErrorAs(t, s.Validate(), &cfgErr)

	s = base()
	s.Predictors = []string{VarGDPPerCapita}
	require.ErrorAs(t, s.Validate(), &cfgErr, "dependent reused as predictor")

	s = base()
	s.Predictors = []string{VarAgricultureShare, VarAgricultureShare}
	require.ErrorAs(t, s.Validate(), &cfgErr, "duplicate predictor")

	s = base()
	s.Models = []string{"ridge"}
	require.ErrorAs(t, s.Validate(), &cfgErr)
}

func TestSchemaMappingMerge(t *testing.T) {
	merged := DefaultSchema().Merge(SchemaMapping{
		FieldCountry:    "Nation",
		FieldPopulation: "",
	})

	assert.Equal(t, "Nation", merged[FieldCountry])
	assert.Equal(t, "Population", merged[FieldPopulation], "empty override is ignored")
	assert.Equal(t, "Year", merged[FieldYear])
}

func TestStageAuditDrop(t *testing.T) {
	audit := StageAudit{Stage: "clean", InputCount: 3}
	audit.Drop("missing_required_field")
	audit.Drop("missing_required_field")
	audit.Drop("nonpositive_population")
	audit.KeptCount = 0

	assert.Equal(t, 3, audit.DroppedCount)
	assert.Equal(t, 2, audit.DropReasons["missing_required_field"])
	assert.Equal(t, audit.InputCount, audit.KeptCount+audit.DroppedCount)
}
