package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econ-pipeline/internal/model"
)

func validRow() RawRow {
	return RawRow{
		model.FieldCountry:       "A",
		model.FieldYear:          "2000",
		model.FieldGDP:           "100",
		model.FieldPopulation:    "10",
		model.FieldGNIPerCapita:  "2000",
		model.FieldAgriculture:   "30",
		model.FieldManufacturing: "50",
		model.FieldTransportComm: "20",
		model.FieldTotalGDP:      "100",
	}
}

func TestCleanValidRow(t *testing.T) {
	records, audit := Clean([]RawRow{validRow()})

	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Country)
	assert.Equal(t, 2000, records[0].Year)
	assert.Equal(t, 100.0, records[0].GDP)
	assert.Equal(t, 0, audit.DroppedCount)
	assert.Equal(t, 1, audit.KeptCount)
}

func TestCleanDropsMissingField(t *testing.T) {
	row := validRow()
	delete(row, model.FieldGNIPerCapita)

	records, audit := Clean([]RawRow{row})

	assert.Empty(t, records)
	assert.Equal(t, 1, audit.DropReasons[DropMissingField])
}

func TestCleanDropsNonNumericCell(t *testing.T) {
	row := validRow()
	row[model.FieldGDP] = "n/a"

	records, audit := Clean([]RawRow{row})

	assert.Empty(t, records)
	assert.Equal(t, 1, audit.DropReasons[DropMissingField])
}

func TestCleanDropsZeroPopulation(t *testing.T) {
	row := validRow()
	row[model.FieldPopulation] = "0"

	records, audit := Clean([]RawRow{validRow(), row})

	// Scenario: one good row, one with population=0; the bad one is dropped
	// and the drop count increases by exactly one.
	require.Len(t, records, 1)
	assert.Equal(t, 1, audit.DroppedCount)
	assert.Equal(t, 1, audit.DropReasons[DropNonPositivePop])
}

func TestCleanDropsNonPositiveTotalGDPAndGNI(t *testing.T) {
	badTotal := validRow()
	badTotal[model.FieldTotalGDP] = "-5"
	badGNI := validRow()
	badGNI[model.FieldCountry] = "B"
	badGNI[model.FieldGNIPerCapita] = "0"

	records, audit := Clean([]RawRow{badTotal, badGNI})

	assert.Empty(t, records)
	assert.Equal(t, 1, audit.DropReasons[DropNonPositiveTotalGDP])
	assert.Equal(t, 1, audit.DropReasons[DropNonPositiveGNI])
}

func TestCleanDropsDuplicateCountryYear(t *testing.T) {
	first := validRow()
	second := validRow()
	second[model.FieldGDP] = "999"

	records, audit := Clean([]RawRow{first, second})

	// First occurrence wins.
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, records[0].GDP)
	assert.Equal(t, 1, audit.DropReasons[DropDuplicateCountryYear])
}

func TestCleanCountArithmetic(t *testing.T) {
	rows := []RawRow{validRow()}
	for i := 0; i < 5; i++ {
		bad := validRow()
		delete(bad, model.FieldGDP)
		rows = append(rows, bad)
	}

	records, audit := Clean(rows)

	assert.Equal(t, len(rows), audit.InputCount)
	assert.Equal(t, audit.InputCount, audit.KeptCount+audit.DroppedCount)
	assert.Equal(t, len(records), audit.KeptCount)
}

func TestCleanIsDeterministic(t *testing.T) {
	rows := []RawRow{validRow()}
	bad := validRow()
	bad[model.FieldPopulation] = "-1"
	rows = append(rows, bad)

	first, firstAudit := Clean(rows)
	second, secondAudit := Clean(rows)

	assert.Equal(t, first, second)
	firstAudit.Duration, secondAudit.Duration = 0, 0
	assert.Equal(t, firstAudit, secondAudit)
}

func TestCleanParsesThousandSeparators(t *testing.T) {
	row := validRow()
	row[model.FieldPopulation] = "1,234,567"
	row[model.FieldGDP] = " 2,000 "

	records, _ := Clean([]RawRow{row})

	require.Len(t, records, 1)
	assert.Equal(t, 1234567.0, records[0].Population)
	assert.Equal(t, 2000.0, records[0].GDP)
}
