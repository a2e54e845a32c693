// tunecheck — pre-flight checker for chat fine-tuning datasets.
// Validates every record, then estimates epochs and billed tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Manjussha/tunecheck/internal/checker"
	"github.com/Manjussha/tunecheck/internal/config"
	"github.com/Manjussha/tunecheck/internal/report"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("tunecheck: ")

	// ── 1. Load configuration, flags override env ───────────────────────────
	cfg := config.Load()

	fs := flag.NewFlagSet("tunecheck", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: tunecheck [flags] [dataset.jsonl]\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "tokenizer encoding: cl100k_base, o200k_base, p50k_base, r50k_base, heuristic")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "report format: text, json, yaml")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable styled output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every skipped record")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *showVersion {
		fmt.Println("tunecheck", Version)
		return
	}
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(2)
	}
	if fs.NArg() == 1 {
		cfg.DatasetPath = fs.Arg(0)
	}
	if cfg.Verbose {
		log.Printf("Config: dataset=%s encoding=%s format=%s", cfg.DatasetPath, cfg.Encoding, cfg.Format)
	}

	// ── 2. Tokenizer + checker ──────────────────────────────────────────────
	chk, err := checker.New(cfg.Encoding)
	if err != nil {
		log.Fatalf("%v", err)
	}
	chk.Verbose = cfg.Verbose

	// Root context — cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 3. Run the check ────────────────────────────────────────────────────
	res, err := chk.Run(ctx, cfg.DatasetPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// ── 4. Render. Findings are advisory; exit status stays 0 ──────────────
	color := !cfg.NoColor && report.IsTerminal(os.Stdout)
	if err := report.Write(os.Stdout, cfg.Format, res, color); err != nil {
		log.Fatalf("%v", err)
	}
}
