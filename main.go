package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/app/models"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/app/server"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/config"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/log"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/market"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/report"
	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/trading"
)

func main() {
	var (
		confPath = flag.String("config", "config.ini", "path to config.ini")
		dataDir  = flag.String("data", "", "stock data directory (overrides config)")
		serve    = flag.Bool("serve", false, "serve stored runs over HTTP instead of planning")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] small|large\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetLogging(*verbose)
	if err := config.InitConfig(*confPath); err != nil {
		logrus.Fatalf("configuration error: %v", err)
	}
	if err := models.InitDB(); err != nil {
		logrus.Fatalf("database open error: %v", err)
	}

	if *serve {
		server.Run()
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	scenario, err := scenarioFromConfig(flag.Arg(0))
	if err != nil {
		logrus.Fatalf("scenario error: %v", err)
	}

	dir := config.Config.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}
	catalog, err := market.LoadDirectory(dir)
	if err != nil {
		logrus.Fatalf("data loading error: %v", err)
	}

	started := time.Now()
	led, balances, err := trading.RunScenario(catalog, scenario)
	if err != nil {
		logrus.Fatalf("planning error: %v", err)
	}

	rep := trading.Validate(led.Moves, catalog, scenario)
	if !rep.OK {
		logrus.Errorf("validation FAILED: %s", rep.Violation)
	}

	writeArtifacts(scenario.Name, led, balances)
	persist(scenario.Name, started, led, rep)
	summarize(scenario.Name, led, rep)
}

func scenarioFromConfig(name string) (trading.Scenario, error) {
	base := trading.Scenario{
		Name:        name,
		InitialCash: config.Config.InitialCash,
		FeeRate:     config.Config.FeeRate,
		VolumeCap:   config.Config.VolumeCap,
	}
	switch name {
	case "small":
		base.MoveLimit = config.Config.Small.MoveLimit
		base.Window = trading.Granularity(config.Config.Small.Window)
		base.Strategy = trading.StrategyGreedy
	case "large":
		base.MoveLimit = config.Config.Large.MoveLimit
		base.Window = trading.Granularity(config.Config.Large.Window)
		base.Strategy = trading.StrategyLookback
	default:
		return base, fmt.Errorf("unknown scenario %q (want small or large)", name)
	}
	return base, base.Validate()
}

func writeArtifacts(name string, led *trading.Ledger, balances []trading.BalancePoint) {
	dir := config.Config.ResultsDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.Errorf("results directory error: %v", err)
		return
	}

	movesPath := filepath.Join(dir, name+"_moves.txt")
	if err := report.SaveMoves(movesPath, led.Moves); err != nil {
		logrus.Errorf("moves file error: %v", err)
	} else {
		logrus.Infof("saved %d moves to %s", len(led.Moves), movesPath)
	}

	chartPath := filepath.Join(dir, "balance_"+name+".svg")
	opt := report.ChartOptions{Title: "Balance history (" + name + " scenario)"}
	if err := report.SaveBalanceSVG(chartPath, balances, opt); err != nil {
		logrus.Warnf("balance chart error: %v", err)
	} else {
		logrus.Infof("saved balance chart to %s", chartPath)
	}
}

func persist(name string, started time.Time, led *trading.Ledger, rep trading.Report) {
	run := models.NewRunFromLedger(name, started, led, rep.OK)
	if err := run.Create(); err != nil {
		logrus.Errorf("run store error: %v", err)
		return
	}
	if err := models.NewMoveRowsFromMoves(run.ID, led.Moves).Create(); err != nil {
		logrus.Errorf("moves store error: %v", err)
	}
}

func summarize(name string, led *trading.Ledger, rep trading.Report) {
	status := "SUCCESS"
	if !rep.OK {
		status = "FAILURE: " + rep.Violation.String()
	}
	fmt.Println("==================================================")
	fmt.Println("               EXECUTION SUMMARY")
	fmt.Println("==================================================")
	fmt.Printf("Scenario executed:      %s\n", name)
	fmt.Printf("Total moves generated:  %d\n", len(led.Moves))
	fmt.Printf("Final cash (strategy):  $%s\n", led.Cash.StringFixed(2))
	fmt.Printf("Final cash (validator): $%s\n", rep.FinalCash.StringFixed(2))
	fmt.Printf("Validation status:      %s\n", status)
	fmt.Println("==================================================")
}
