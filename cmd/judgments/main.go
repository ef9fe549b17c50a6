package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"judgments/internal"
	"judgments/internal/config"
	"judgments/internal/logger"
	"judgments/internal/pipeline"
	"judgments/internal/scrape"
	"judgments/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	cmd := os.Args[1]
	switch cmd {
	case "scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		groups := fs.String("groups", "", "group strings separated by |")
		maxPages := fs.Int("max-pages", cfg.JudiciaryMaxPages, "max pages per group, 0 = all")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		cfg.JudiciaryMaxPages = *maxPages

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		svc := scrape.NewService(db, cfg, log)
		res, err := svc.Run(ctx, scrape.Options{Groups: config.SplitGroups(*groups), OutputPath: *out})
		must(err)
		fmt.Printf("scrape done run=%d status=%s pages=%d records=%d failed=%d\n", res.RunID, res.Status, res.Pages, res.Records, res.Failed)
		if res.ExportErr != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", res.ExportErr)
			return
		}
		fmt.Printf("exported %s\n", res.OutputPath)
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "json file with portal rows (- for stdin)")
		out := fs.String("out", "-", "output xlsx path or - for csv on stdout")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		src := os.Stdin
		if *input != "-" {
			f, err := os.Open(*input)
			must(err)
			defer f.Close()
			src = f
		}
		rows, err := pipeline.LoadRawRecordsJSON(src)
		must(err)

		coll := &internal.Collection{}
		res := pipeline.NewAssembler(log).AssembleBatch(coll, rows)
		if *out == "-" {
			must(pipeline.WriteCollectionCSV(coll, os.Stdout))
			return
		}
		must(pipeline.ExportCollectionToXLSX(coll, *out))
		fmt.Printf("normalized rows=%d failed=%d output=%s\n", res.Appended, len(res.Failures), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int("run", 0, "run id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--run and --out are required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		coll, err := db.GetRunCollection(*runID)
		must(err)
		if coll.Len() == 0 {
			must(fmt.Errorf("no records for run=%d", *runID))
		}
		must(pipeline.ExportCollectionToXLSX(coll, *out))
		fmt.Printf("exported %d rows to %s\n", coll.Len(), *out)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			output := ""
			if r.OutputPath != nil {
				output = *r.OutputPath
			}
			fmt.Printf("%d\t%s\t%s\trecords=%d\tfailed=%d\t%s\n", r.ID, r.StartedAt, r.Status, r.Records, r.Failed, output)
		}
	case "attachments:text":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int("run", 0, "run id")
		limit := fs.Int("limit", 100, "max attachments")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 {
			must(fmt.Errorf("--run is required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		svc := scrape.NewService(db, cfg, log)
		res, err := svc.ExtractAttachments(ctx, *runID, *limit)
		must(err)
		fmt.Printf("attachments run=%d downloaded=%d extracted=%d failed=%d\n", *runID, res.Downloaded, res.Extracted, res.Failed)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: judgments <command>")
	fmt.Println("commands:")
	fmt.Println("  scrape [--groups=';#High Court;#High Court - Civil;#|...'] [--max-pages=0] [--out=...xlsx]")
	fmt.Println("  normalize --input=rows.json [--out=-|...xlsx]")
	fmt.Println("  export:xlsx --run=1 --out=./Excel_Files/result.xlsx")
	fmt.Println("  runs [--limit=20]")
	fmt.Println("  attachments:text --run=1 [--limit=100]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
