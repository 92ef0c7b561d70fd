// Command scenariolint plans load simulation request files and fails when
// any of them does not plan cleanly.
//
//	scenariolint requests/smoke.json requests/soak.yaml
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"load-simulation/internal/engine"
	"load-simulation/internal/logging"
	"load-simulation/internal/model"
	"load-simulation/internal/requestfile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scenariolint FILE...")
		os.Exit(2)
	}

	logger, err := logging.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if failed := lint(logger, os.Stdout, os.Args[1:]); failed > 0 {
		logger.Error("Request files failed", zap.Int("failed", failed), zap.Int("total", len(os.Args)-1))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// lint plans every file, writes each plan to out and returns how many files
// could not be loaded or planned with a FAILURE outcome.
func lint(logger *zap.Logger, out io.Writer, paths []string) int {
	failed := 0
	for _, path := range paths {
		req, err := requestfile.Load(path)
		if err != nil {
			logger.Error("Loading request file", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}

		plan := engine.Process(req)
		b, err := json.MarshalIndent(plan, "", "\t")
		if err != nil {
			logger.Error("Encoding plan", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}
		if _, err := fmt.Fprintf(out, "%s\n", b); err != nil {
			logger.Error("Writing plan", zap.String("file", path), zap.Error(err))
			failed++
			continue
		}

		logger.Info("Request planned",
			zap.String("file", path),
			zap.String("outcome", plan.PlanMetadata.PlanOutcome),
			zap.Int("transactions", plan.PlanResult.TotalTransactions))
		if plan.PlanMetadata.PlanOutcome != model.OutcomeSuccess {
			failed++
		}
	}
	return failed
}
