package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"econ-pipeline/internal/api/handler"
	"econ-pipeline/pkg/router"
)

// RegisterRoutes wires the analysis API. More specific routes first; the
// router tries patterns in registration order.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/analyses", handler.CreateAnalysis)
	r.GET("/api/v1/analyses", handler.ListAnalyses)
	r.GET("/api/v1/analyses/*/models", handler.GetAnalysisModels)
	r.GET("/api/v1/analyses/*/records", handler.GetAnalysisRecords)
	r.GET("/api/v1/analyses/*/groups", handler.GetAnalysisGroups)
	r.GET("/api/v1/analyses/*", handler.GetAnalysis)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
