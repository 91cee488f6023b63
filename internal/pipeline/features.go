package pipeline

import (
	"fmt"
	"time"

	"econ-pipeline/internal/model"
)

// ClassifyIncome assigns the income group for a GNI-per-capita value using
// fixed ascending boundaries. A value exactly on a boundary classifies into
// the lower group. Pure function of its inputs.
func ClassifyIncome(gni float64, b model.IncomeBoundaries) model.IncomeGroup {
	switch {
	case gni <= b.Low:
		return model.IncomeLow
	case gni <= b.LowerMiddle:
		return model.IncomeLowerMiddle
	case gni <= b.UpperMiddle:
		return model.IncomeUpperMiddle
	default:
		return model.IncomeHigh
	}
}

// Engineer computes the derived indicators for every cleaned record and
// builds the immutable session Dataset. The cleaner already excluded rows
// with non-positive population, total GDP or GNI; any that still appear here
// (records constructed outside Clean) are excluded with the same
// drop-and-count policy rather than producing undefined ratios.
//
// Returns a ConfigurationError before touching any row if the boundaries are
// not strictly ascending.
func Engineer(records []model.Record, boundaries model.IncomeBoundaries) (*model.Dataset, model.StageAudit, error) {
	if err := boundaries.Validate(); err != nil {
		return nil, model.StageAudit{}, err
	}

	start := time.Now()
	audit := model.StageAudit{Stage: "engineer", InputCount: len(records)}

	engineered := make([]model.EngineeredRecord, 0, len(records))
	for _, rec := range records {
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

		engineered = append(engineered, model.EngineeredRecord{
			Record:             rec,
			GDPPerCapita:       rec.GDP / rec.Population,
			AgricultureShare:   rec.Agriculture / rec.TotalGDP,
			ManufacturingShare: rec.Manufacturing / rec.TotalGDP,
			TransportCommShare: rec.TransportComm / rec.TotalGDP,
			IncomeGroup:        ClassifyIncome(rec.GNIPerCapita, boundaries),
		})
	}

	audit.KeptCount = len(engineered)
	audit.Duration = time.Since(start)
	fmt.Printf("🔄 Engineer: %d records derived, %d dropped\n", audit.KeptCount, audit.DroppedCount)
	return model.NewDataset(engineered), audit, nil
}
