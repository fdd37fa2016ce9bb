package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AndyChen1024/NotiMind/internal/appmeta"
	"github.com/AndyChen1024/NotiMind/internal/export"
	"github.com/AndyChen1024/NotiMind/internal/ingest"
	"github.com/AndyChen1024/NotiMind/internal/logging"
	"github.com/AndyChen1024/NotiMind/internal/model"
	"github.com/AndyChen1024/NotiMind/internal/seed"
	"github.com/AndyChen1024/NotiMind/internal/store"
	"github.com/AndyChen1024/NotiMind/internal/summary"
)

const usage = `notimind - personal notification aggregation and summaries

Usage:
  notimind <command> [flags]

Commands:
  ingest      read captured notification events (JSON lines) and store them
  generate    build summaries for a date or a date range
  summaries   print time-period summaries for a date or range
  apps        print per-app summaries for a date range
  export      export raw notifications to a JSON or CSV file
  seed        insert sample notifications for demos
  prune       delete data older than the retention window
  clear       delete stored notifications and/or summaries
  run         keep running, generating summaries on a cron schedule

Run "notimind <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "ingest":
		err = cmdIngest(os.Args[2:])
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "summaries":
		err = cmdSummaries(os.Args[2:])
	case "apps":
		err = cmdApps(os.Args[2:])
	case "export":
		err = cmdExport(os.Args[2:])
	case "seed":
		err = cmdSeed(os.Args[2:])
	case "prune":
		err = cmdPrune(os.Args[2:])
	case "clear":
		err = cmdClear(os.Args[2:])
	case "run":
		err = cmdRun(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "notimind:", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	dbPath   string
	logLevel string
	timezone string
	prefs    string
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.dbPath, "db", defaultDBPath(), "path to the SQLite database")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&c.timezone, "tz", "", "IANA timezone for day boundaries (default: system local)")
	fs.StringVar(&c.prefs, "prefs", model.DefaultPreferencesPath(), "path to the preferences file")
	return c
}

// env bundles the wired application for one command invocation.
type env struct {
	store    *store.SQLiteStore
	service  *summary.Service
	resolver appmeta.Resolver
	loc      *time.Location
	logger   *slog.Logger
}

func setup(c *commonFlags) (*env, error) {
	logger := logging.New(c.logLevel)

	loc := time.Local
	if c.timezone != "" {
		var err error
		loc, err = time.LoadLocation(c.timezone)
		if err != nil {
			return nil, fmt.Errorf("loading timezone %q: %w", c.timezone, err)
		}
	}

	if dir := filepath.Dir(c.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	s, err := store.NewSQLiteStore(c.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	resolver := appmeta.NewCached(&appmeta.StaticResolver{}, 0)
	gen := summary.NewGenerator(s, loc, logger)
	svc := summary.NewService(s, gen, filePreferences{path: c.prefs}, resolver, loc, logger)

	return &env{store: s, service: svc, resolver: resolver, loc: loc, logger: logger}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("closing database", "error", err)
	}
}

// filePreferences re-reads the preferences file on every call, so a
// long-running process picks up edits without a restart.
type filePreferences struct {
	path string
}

func (p filePreferences) Current() (*model.UserPreferences, error) {
	return model.LoadPreferences(p.path)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notimind.db"
	}
	return filepath.Join(home, ".local", "share", "notimind", "notimind.db")
}

func cmdIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	c := registerCommon(fs)
	file := fs.String("file", "-", "JSON-lines event file, or - for stdin")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	var r io.Reader = os.Stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return fmt.Errorf("opening event file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var events []ingest.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev ingest.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			e.logger.Warn("skipping malformed event line", "error", err)
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading events: %w", err)
	}

	p := ingest.NewProcessor(e.store, e.resolver, e.logger)
	stored := p.IngestAll(context.Background(), events)
	fmt.Printf("stored %d of %d events\n", stored, len(events))
	return nil
}

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	c := registerCommon(fs)
	dateArg := fs.String("date", "", "date to summarize (YYYY-MM-DD, default today)")
	fromArg := fs.String("from", "", "range start (YYYY-MM-DD)")
	toArg := fs.String("to", "", "range end (YYYY-MM-DD)")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	if *fromArg != "" || *toArg != "" {
		start, end, err := parseRange(*fromArg, *toArg)
		if err != nil {
			return err
		}
		return e.service.GenerateForRange(ctx, start, end)
	}

	date := model.DateOf(time.Now().In(e.loc))
	if *dateArg != "" {
		if date, err = model.ParseDate(*dateArg); err != nil {
			return err
		}
	}
	return e.service.GenerateForDate(ctx, date)
}

func cmdSummaries(args []string) error {
	fs := flag.NewFlagSet("summaries", flag.ExitOnError)
	c := registerCommon(fs)
	dateArg := fs.String("date", "", "date to read (YYYY-MM-DD, default today)")
	fromArg := fs.String("from", "", "range start (YYYY-MM-DD)")
	toArg := fs.String("to", "", "range end (YYYY-MM-DD)")
	idArg := fs.String("id", "", "read a single summary by id")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()

	if *idArg != "" {
		s, err := e.service.SummaryByID(ctx, *idArg)
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Println("no summary with id", *idArg)
			return nil
		}
		return printJSON(s)
	}

	var summaries []model.NotificationSummary
	if *fromArg != "" || *toArg != "" {
		start, end, err := parseRange(*fromArg, *toArg)
		if err != nil {
			return err
		}
		summaries, err = e.service.TimeSummariesByRange(ctx, start, end)
		if err != nil {
			return err
		}
	} else {
		date := model.DateOf(time.Now().In(e.loc))
		if *dateArg != "" {
			if date, err = model.ParseDate(*dateArg); err != nil {
				return err
			}
		}
		summaries, err = e.service.TimeSummariesByDate(ctx, date)
		if err != nil {
			return err
		}
	}
	return printJSON(summaries)
}

func cmdApps(args []string) error {
	fs := flag.NewFlagSet("apps", flag.ExitOnError)
	c := registerCommon(fs)
	fromArg := fs.String("from", "", "range start (YYYY-MM-DD, default today)")
	toArg := fs.String("to", "", "range end (YYYY-MM-DD, default today)")
	sourceArg := fs.String("source", "", "limit to one source id")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	today := model.DateOf(time.Now().In(e.loc))
	start, end := today, today
	if *fromArg != "" || *toArg != "" {
		if start, end, err = parseRange(*fromArg, *toArg); err != nil {
			return err
		}
	}

	ctx := context.Background()
	if *sourceArg != "" {
		s, err := e.service.AppSummary(ctx, *sourceArg, start, end)
		if err != nil {
			return err
		}
		if s == nil {
			fmt.Println("no notifications from", *sourceArg)
			return nil
		}
		return printJSON(s)
	}

	summaries, err := e.service.AppSummaries(ctx, start, end)
	if err != nil {
		return err
	}
	return printJSON(summaries)
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := registerCommon(fs)
	fromArg := fs.String("from", "", "range start (YYYY-MM-DD, default today)")
	toArg := fs.String("to", "", "range end (YYYY-MM-DD, default today)")
	formatArg := fs.String("format", "json", "export format (json or csv)")
	outArg := fs.String("out", ".", "directory to write the export file into")
	fs.Parse(args)

	format, err := export.ParseFormat(*formatArg)
	if err != nil {
		return err
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	today := model.DateOf(time.Now().In(e.loc))
	start, end := today, today
	if *fromArg != "" || *toArg != "" {
		if start, end, err = parseRange(*fromArg, *toArg); err != nil {
			return err
		}
	}

	exporter := export.NewExporter(e.store, *outArg)
	path, err := exporter.Export(context.Background(),
		start.Millis(e.loc), end.Next().Millis(e.loc), format)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func cmdSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	c := registerCommon(fs)
	days := fs.Int("days", 3, "how many past days to cover, ending today")
	count := fs.Int("count", 50, "how many notifications to generate")
	seedArg := fs.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	sv := *seedArg
	if sv == 0 {
		sv = uint64(time.Now().UnixNano())
	}

	end := model.DateOf(time.Now().In(e.loc))
	start := end.AddDays(-(*days - 1))

	g := seed.NewGenerator(sv, e.loc)
	ctx := context.Background()
	inserted := 0
	for _, n := range g.Notifications(start, end, *count) {
		if _, err := e.store.InsertNotification(ctx, n); err != nil {
			e.logger.Warn("skipping sample notification", "error", err)
			continue
		}
		inserted++
	}
	fmt.Printf("inserted %d sample notifications across %s..%s\n", inserted, start, end)
	return nil
}

func cmdPrune(args []string) error {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	c := registerCommon(fs)
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	notifications, summaries, err := e.service.PruneExpired(context.Background(), time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d notifications, %d summaries\n", notifications, summaries)
	return nil
}

func cmdClear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	c := registerCommon(fs)
	what := fs.String("what", "summaries", "what to delete: summaries, notifications, or all")
	before := fs.String("before", "", "only delete data dated before this date (YYYY-MM-DD)")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	clearSummaries := *what == "summaries" || *what == "all"
	clearNotifications := *what == "notifications" || *what == "all"
	if !clearSummaries && !clearNotifications {
		return fmt.Errorf("unknown clear target %q", *what)
	}

	if *before != "" {
		cutoff, err := model.ParseDate(*before)
		if err != nil {
			return err
		}
		if clearNotifications {
			n, err := e.store.DeleteNotificationsOlderThan(ctx, cutoff.Millis(e.loc))
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d notifications\n", n)
		}
		if clearSummaries {
			n, err := e.service.ClearSummariesOlderThan(ctx, cutoff)
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d summaries\n", n)
		}
		return nil
	}

	if clearNotifications {
		if err := e.store.DeleteAllNotifications(ctx); err != nil {
			return err
		}
		fmt.Println("deleted all notifications")
	}
	if clearSummaries {
		if err := e.service.ClearAllSummaries(ctx); err != nil {
			return err
		}
		fmt.Println("deleted all summaries")
	}
	return nil
}

func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	c := registerCommon(fs)
	schedule := fs.String("schedule", "5 0 * * *", "cron schedule for daily generation")
	runOnStart := fs.Bool("run-on-start", true, "generate today's summaries on startup")
	fs.Parse(args)

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := func() {
		now := time.Now().In(e.loc)
		date := model.DateOf(now)
		if err := e.service.GenerateForDate(ctx, date); err != nil {
			e.logger.Error("scheduled generation failed", "date", date.String(), "error", err)
		}
		// Regenerate yesterday too: late-arriving events near midnight
		// would otherwise be missed by a single daily pass.
		yesterday := date.AddDays(-1)
		if err := e.service.GenerateForDate(ctx, yesterday); err != nil {
			e.logger.Error("scheduled generation failed", "date", yesterday.String(), "error", err)
		}
		if _, _, err := e.service.PruneExpired(ctx, now); err != nil {
			e.logger.Error("scheduled prune failed", "error", err)
		}
	}

	if *runOnStart {
		tick()
	}

	cr := cron.New(cron.WithLocation(e.loc))
	if _, err := cr.AddFunc(*schedule, tick); err != nil {
		return fmt.Errorf("setting up schedule %q: %w", *schedule, err)
	}
	cr.Start()
	e.logger.Info("scheduler running", "schedule", *schedule, "db", c.dbPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	e.logger.Info("shutting down", "signal", sig.String())

	cancel()
	stopCtx := cr.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		e.logger.Warn("timed out waiting for running jobs")
	}
	return nil
}

func parseRange(fromArg, toArg string) (model.Date, model.Date, error) {
	if fromArg == "" || toArg == "" {
		return model.Date{}, model.Date{}, fmt.Errorf("both -from and -to are required for a range")
	}
	start, err := model.ParseDate(fromArg)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	end, err := model.ParseDate(toArg)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	return start, end, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
