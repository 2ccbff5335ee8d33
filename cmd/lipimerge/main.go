package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lipidquant/lipimerge/internal/config"
	"github.com/lipidquant/lipimerge/internal/pipeline"
)

type Output struct {
	Success    bool     `json:"success"`
	RunID      string   `json:"run_id,omitempty"`
	OutputFile string   `json:"output_file,omitempty"`
	RowCount   int      `json:"row_count,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
	Duration   string   `json:"duration"`
}

func main() {

	start := time.Now()

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		emitJSON(Output{
			Success:  false,
			Error:    fmt.Sprintf("configuration error: %v", err),
			Duration: time.Since(start).String(),
		})
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("lipimerge v. %s\n", pipeline.Version)
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	p := pipeline.New(logger)
	res, err := p.Run(context.Background(), cfg)
	if err != nil {
		emitJSON(Output{
			Success:  false,
			Error:    fmt.Sprintf("merge error: %v", err),
			Duration: time.Since(start).String(),
		})
		os.Exit(1)
	}

	emitJSON(Output{
		Success:    true,
		RunID:      res.RunID,
		OutputFile: res.OutputFile,
		RowCount:   res.RowCount,
		Warnings:   res.Warnings,
		Duration:   time.Since(start).String(),
	})

}

func emitJSON(out Output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("JSON output: %v", err)
	}
}
