package main

import (
	"flag"

	_ "econ-pipeline/docs"
	"econ-pipeline/internal/api"
	"econ-pipeline/internal/store"
	"econ-pipeline/pkg/router"
)

// @title Econ Pipeline API
// @version 1.0
// @description Macroeconomic structure analysis: cleaning, feature engineering, OLS and fixed-effects panel regression.
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "econ.db", "sqlite database path")
	flag.Parse()

	if err := store.InitDB(*dbPath); err != nil {
		panic(err)
	}

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(*addr)
}
