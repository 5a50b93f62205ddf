package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/conorfennell/burydays/internal/config"
	"github.com/conorfennell/burydays/internal/days"
	"github.com/conorfennell/burydays/internal/storage"
	"github.com/spf13/pflag"
)

const usage = `Usage: burydays [flags] <command>

Commands:
  list                 show active bury records
  sweep                delete expired bury records
  bury <cid>...        bury cards for --days; the host re-asserts them
                       on its next reconcile
`

func main() {
	fs := pflag.NewFlagSet("burydays", pflag.ExitOnError)
	configFile := fs.String("config", "", "Path to a YAML config file")
	fs.String("db-path", "bury.db", "Path to the bury store file")
	fs.Int("sweep-every", 10, "1-in-N chance of sweeping on reconcile")
	daysSpec := fs.String("days", "", "Days to bury for, e.g. '10' or '1-100'")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(fs, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	args := fs.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(2)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open bury store: %v", err)
	}
	defer db.Close()

	now := time.Now().Unix()

	switch args[0] {
	case "list":
		records, err := db.ActiveRecords(now)
		if err != nil {
			log.Fatalf("Failed to list bury records: %v", err)
		}
		for _, rec := range records {
			fmt.Printf("%d\t%s\n", rec.CardID, time.Unix(rec.Until, 0).Format(time.RFC3339))
		}
		fmt.Printf("%d active records.\n", len(records))

	case "sweep":
		if err := db.DeleteExpired(now); err != nil {
			log.Fatalf("Failed to sweep expired records: %v", err)
		}
		fmt.Println("Swept expired records.")

	case "bury":
		if len(args) < 2 {
			log.Fatalf("bury requires at least one card id")
		}
		r, err := days.ParseRange(*daysSpec)
		if err != nil {
			log.Fatalf("Invalid --days: %v", err)
		}

		sampler := days.NewSampler()
		records := make(map[int64]int64, len(args)-1)
		for _, arg := range args[1:] {
			cid, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				log.Fatalf("Invalid card id %q: %v", arg, err)
			}
			records[cid] = now + int64(sampler.Sample(r))*86400
		}

		if err := db.UpsertMany(records); err != nil {
			log.Fatalf("Failed to write bury records: %v", err)
		}
		if r.Fixed() {
			fmt.Printf("Buried %d cards for %d days.\n", len(records), r.Low)
		} else {
			fmt.Printf("Buried %d cards for between %d–%d days.\n", len(records), r.Low, r.High)
		}

	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}
