// Command pawtrack detects paw contacts in pressure plate recordings,
// stores them in SQLite and manages their labels.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/pawlabel/internal/config"
	"github.com/banshee-data/pawlabel/internal/contact"
	"github.com/banshee-data/pawlabel/internal/db"
	"github.com/banshee-data/pawlabel/internal/plate"
	"github.com/banshee-data/pawlabel/internal/report"
	"github.com/banshee-data/pawlabel/internal/tracking"
	"github.com/banshee-data/pawlabel/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("pawtrack: %v", err)
	}
}

var errUsage = errors.New("usage")

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "track":
		return runTrack(rest, stdout)
	case "list":
		return runList(rest, stdout)
	case "label":
		return runLabel(rest, stdout)
	case "invalidate":
		return runInvalidate(rest, stdout)
	case "export":
		return runExport(rest, stdout)
	case "version":
		fmt.Fprintf(stdout, "pawtrack %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return nil
	case "help":
		printUsage(stdout)
		return nil
	}
	printUsage(stdout)
	return fmt.Errorf("unknown command %q", command)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `pawtrack - paw contact detection and labeling

Usage: pawtrack <command> [options]

Commands:
  track       detect contacts in a recording and optionally store them
  list        list measurements, or the contacts of one measurement
  label       set the paw label of a stored contact
  invalidate  mark a stored contact invalid (or valid with -valid)
  export      print the stored contacts of a measurement as JSON
  version     print version information

Run 'pawtrack <command> -h' for command options.`)
}

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	return fs
}

func runTrack(args []string, stdout io.Writer) error {
	fs := newFlagSet("track", stdout)
	in := fs.String("in", "", "recording file (plain-text frame blocks)")
	name := fs.String("name", "", "measurement name (defaults to the file name)")
	dbPath := fs.String("db", "", "sqlite database to store contacts in")
	configPath := fs.String("config", "", "tuning config JSON (defaults are built in)")
	plotDir := fs.String("plot", "", "directory for force/pressure PNG plots")
	htmlPath := fs.String("html", "", "file for the HTML gait timeline")
	diag := fs.Bool("diag", false, "log per-run diagnostics to stderr")
	trace := fs.Bool("trace", false, "log per-contact detail to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("track: -in is required")
	}

	configureLogging(*diag, *trace)

	tuning := config.DefaultTuningConfig()
	if *configPath != "" {
		var err error
		if tuning, err = config.LoadTuningConfig(*configPath); err != nil {
			return err
		}
	}
	cfg, err := tracking.ConfigFromTuning(tuning)
	if err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	tn, err := plate.ReadFrames(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	contacts, err := tracking.NewTracker(cfg).Track(tn)
	if err != nil {
		return fmt.Errorf("track %s: %w", *in, err)
	}
	printContacts(stdout, contacts)

	if *dbPath != "" {
		if *name == "" {
			*name = strings.TrimSuffix(filepath.Base(*in), filepath.Ext(*in))
		}
		store, err := db.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer store.Close()

		rows, cols, frames := tn.Dims()
		m, err := store.CreateMeasurement(*name, rows, cols, frames)
		if err != nil {
			return err
		}
		if err := store.SaveContacts(m.ID, contacts); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "stored %d contacts as measurement %s\n", len(contacts), m.ID)
	}

	if *plotDir != "" && len(contacts) > 0 {
		if err := os.MkdirAll(*plotDir, 0755); err != nil {
			return err
		}
		if err := report.ForcePlot(contacts, filepath.Join(*plotDir, "force.png")); err != nil {
			return err
		}
		if err := report.SeriesPlot(contacts, report.Pressure, filepath.Join(*plotDir, "pressure.png")); err != nil {
			return err
		}
	}
	if *htmlPath != "" && len(contacts) > 0 {
		if err := writeTimeline(*htmlPath, *in, contacts); err != nil {
			return err
		}
	}
	return nil
}

func configureLogging(diag, trace bool) {
	var diagW, traceW io.Writer
	if diag {
		diagW = os.Stderr
	}
	if trace {
		traceW = os.Stderr
	}
	tracking.SetLogWriters(os.Stderr, diagW, traceW)
	db.SetLogWriters(os.Stderr, diagW, traceW)
}

func writeTimeline(path, title string, contacts []*contact.Contact) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.GaitTimeline(contacts, title, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printContacts(w io.Writer, contacts []*contact.Contact) {
	fmt.Fprintf(w, "%4s %11s %6s %11s %11s %8s %9s\n", "id", "frames", "count", "x", "y", "label", "invalid")
	for _, c := range contacts {
		fmt.Fprintf(w, "%4d %5d..%-4d %6d %5d..%-4d %5d..%-4d %8s %9v\n",
			c.ID, c.MinFrame(), c.MaxFrame(), c.Length(), c.MinX, c.MaxX, c.MinY, c.MaxY, c.Label, c.Invalid)
	}
}

func openStore(dbPath string) (*db.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("-db is required")
	}
	return db.Open(dbPath)
}

func runList(args []string, stdout io.Writer) error {
	fs := newFlagSet("list", stdout)
	dbPath := fs.String("db", "", "sqlite database")
	measurement := fs.String("m", "", "measurement ID; lists its contacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if *measurement != "" {
		contacts, err := store.Contacts(*measurement)
		if err != nil {
			return err
		}
		printContacts(stdout, contacts)
		return nil
	}

	ms, err := store.Measurements()
	if err != nil {
		return err
	}
	for _, m := range ms {
		fmt.Fprintf(stdout, "%s  %-24s %dx%dx%d  %s\n", m.ID, m.Name, m.Rows, m.Cols, m.Frames, m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runLabel(args []string, stdout io.Writer) error {
	fs := newFlagSet("label", stdout)
	dbPath := fs.String("db", "", "sqlite database")
	measurement := fs.String("m", "", "measurement ID")
	id := fs.Int("contact", -1, "contact ID")
	labelName := fs.String("label", "", "LF, LH, RF, RH, invalid or unlabeled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	label, err := contact.ParseLabel(*labelName)
	if err != nil {
		return err
	}
	if *measurement == "" || *id < 0 {
		return fmt.Errorf("label: -m and -contact are required")
	}
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateLabel(*measurement, *id, label); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "contact %d labeled %s\n", *id, label)
	return nil
}

func runInvalidate(args []string, stdout io.Writer) error {
	fs := newFlagSet("invalidate", stdout)
	dbPath := fs.String("db", "", "sqlite database")
	measurement := fs.String("m", "", "measurement ID")
	id := fs.Int("contact", -1, "contact ID")
	valid := fs.Bool("valid", false, "mark the contact valid again")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *measurement == "" || *id < 0 {
		return fmt.Errorf("invalidate: -m and -contact are required")
	}
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetInvalid(*measurement, *id, !*valid); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "contact %d invalid=%v\n", *id, !*valid)
	return nil
}

func runExport(args []string, stdout io.Writer) error {
	fs := newFlagSet("export", stdout)
	dbPath := fs.String("db", "", "sqlite database")
	measurement := fs.String("m", "", "measurement ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *measurement == "" {
		return fmt.Errorf("export: -m is required")
	}
	store, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	contacts, err := store.Contacts(*measurement)
	if err != nil {
		return err
	}
	records := make([]contact.Record, len(contacts))
	for i, c := range contacts {
		records[i] = c.ToDict()
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
