package main

import (
	"fmt"
	"os"

	"glucoterm/internal/app"
	"glucoterm/internal/config"
	"glucoterm/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("glucoterm")

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "glucoterm:", err)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	a := app.New(cfg, log)
	if err = a.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "glucoterm:", err)
		log.Fatal().Err(err).Msg("run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
