package main

import (
	"context"
	"os"

	"github.com/xlmriosx/server-stats/config"
	"github.com/xlmriosx/server-stats/internal/report"
)

func main() {
	cfg := config.Load()

	// Generate the report; individual metric failures surface inside the
	// report itself, so the run always completes and exits 0
	gen := report.New(cfg)
	gen.Generate(context.Background(), os.Stdout)
}
