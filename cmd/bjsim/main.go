// Command bjsim runs a blackjack advantage-play Monte Carlo simulation
// from a JSON scenario file or a built-in preset, and prints the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardcounter/bjsim/simengine"
)

type CLI struct {
	Scenario string `help:"Path to a JSON SimulationRequest; omit to use --preset."`
	Preset   string `default:"default" help:"Built-in scenario when --scenario is omitted: default."`
	Hands    int    `help:"Override the scenario's hand count."`
	Seed     int64  `help:"Override the scenario's RNG seed."`
	Verbose  bool   `short:"v" help:"Debug-level logging."`
	JSON     bool   `help:"Print the result as JSON instead of formatted text."`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	req, err := loadRequest(cli)
	if err != nil {
		logger.Error("loading scenario", "error", err)
		os.Exit(1)
	}
	if cli.Hands > 0 {
		req.Hands = cli.Hands
	}
	if cli.Seed != 0 {
		req.Seed = cli.Seed
	}

	logger.Info("starting simulation", "hands", req.Hands, "seed", req.Seed)

	start := time.Now()
	result, err := simengine.Run(context.Background(), &req, func(done, total int, profitSum, sqProfitSum, betSum float64) {
		logger.Debug("progress", "done", done, "total", total)
	})
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if cli.JSON {
		printJSON(result)
		return
	}
	printResult(result, elapsed)
}

func loadRequest(cli CLI) (simengine.SimulationRequest, error) {
	if cli.Scenario != "" {
		return loadScenarioFile(cli.Scenario)
	}
	switch cli.Preset {
	case "", "default":
		return simengine.DefaultScenario(), nil
	default:
		return simengine.SimulationRequest{}, fmt.Errorf("bjsim: unknown preset %q", cli.Preset)
	}
}

func loadScenarioFile(path string) (simengine.SimulationRequest, error) {
	var req simengine.SimulationRequest
	b, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("bjsim: reading scenario file: %w", err)
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("bjsim: parsing scenario file: %w", err)
	}
	return req, nil
}

func printJSON(result *simengine.SimulationResult) {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "bjsim: marshaling result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}

func printResult(r *simengine.SimulationResult, elapsed time.Duration) {
	fmt.Printf("Rounds played:     %d\n", r.RoundsPlayed)
	fmt.Printf("EV/100 hands:      %.4f\n", r.EVPer100)
	fmt.Printf("Stdev/100 hands:   %.4f\n", r.StdevPer100)
	fmt.Printf("Variance/hand:     %.6f\n", r.VariancePerHand)
	fmt.Printf("Desirability index: %.4f\n", r.DI)
	fmt.Printf("Score:             %.4f\n", r.Score)
	fmt.Printf("N0 (hands):        %.1f\n", r.N0Hands)
	if r.AvgInitialBet != nil {
		fmt.Printf("Avg initial bet:   %.2f (%.2f units)\n", *r.AvgInitialBet, *r.AvgInitialBetUnits)
	}
	if r.RoR != nil {
		fmt.Printf("Simple RoR:        %.6f\n", *r.RoR)
	}
	if r.RiskOfRuin != nil {
		ror := r.RiskOfRuin
		if ror.RequiredBankroll5Pct != nil {
			fmt.Printf("Bankroll @5%% RoR:  %.2f\n", *ror.RequiredBankroll5Pct)
		}
		if ror.RequiredBankroll1Pct != nil {
			fmt.Printf("Bankroll @1%% RoR:  %.2f\n", *ror.RequiredBankroll1Pct)
		}
		if ror.TripRoR != nil {
			fmt.Printf("Trip RoR (%.0fh):   %.6f\n", *ror.TripHours, *ror.TripRoR)
		}
	}
	if r.HoursPlayed != nil {
		fmt.Printf("Hours played:      %.2f\n", *r.HoursPlayed)
	}
	fmt.Printf("Elapsed:           %s\n", elapsed)
}
