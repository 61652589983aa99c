package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/config"
	"github.com/umputun/booruscope/pkg/engine"
	"github.com/umputun/booruscope/pkg/profile"
	"github.com/umputun/booruscope/pkg/repository"
	"github.com/umputun/booruscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"config file, built-in defaults if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	TopTags        int  `long:"top-tags" description:"print N most and least liked tags and exit"`
	RebuildProfile bool `long:"rebuild-profile" description:"rebuild preference profile from the ledger and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

// stdout is where maintenance modes print reports
var stdout io.Writer = os.Stdout

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor, os.Getenv("BOORU_API_KEY"))
	lgr.Printf("[INFO] starting booruscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close ledger: %v", err)
		}
	}()

	eng := makeEngine(cfg, repos)

	switch {
	case opts.RebuildProfile:
		prof, err := eng.RebuildProfile(ctx)
		if err != nil {
			return fmt.Errorf("failed to rebuild profile: %w", err)
		}
		lgr.Printf("[INFO] profile rebuilt to %s, %d liked, %d disliked, %d tags",
			cfg.Profile.Path, prof.TotalLiked, prof.TotalDisliked, len(prof.TagScores))
		return nil
	case opts.TopTags > 0:
		return printReport(ctx, eng, opts.TopTags)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// warm up the profile so the first request doesn't rebuild it
		report, err := eng.ProfileReport(ctx, 3)
		if err != nil {
			lgr.Printf("[WARN] can't load profile: %v", err)
			return nil
		}
		lgr.Printf("[INFO] profile loaded, %d liked, %d disliked, top tags %v",
			report.TotalLiked, report.TotalDisliked, entryNames(report.TopTags))
		return nil
	})
	g.Go(func() error {
		srv := server.New(cfg, eng, repos.Seen, revision, opts.Debug)
		return srv.Run(ctx)
	})
	return g.Wait()
}

func makeEngine(cfg *config.Config, repos *repository.Repositories) *engine.Engine {
	client := booru.NewClient(booru.Params{
		Kind:            booru.Kind(cfg.Booru.Kind),
		BaseURL:         cfg.Booru.BaseURL,
		Login:           cfg.Booru.Login,
		APIKey:          cfg.Booru.APIKey,
		UserAgent:       cfg.Booru.UserAgent,
		Timeout:         cfg.Booru.Timeout,
		BreakerFailures: cfg.Booru.BreakerFailures,
		BreakerCooldown: cfg.Booru.BreakerCooldown,
	})

	scorer := &profile.Scorer{
		TagWeight:    cfg.Profile.TagWeight,
		RatingWeight: cfg.Profile.RatingWeight,
		Steepness:    cfg.Profile.Steepness,
	}

	return engine.New(client, repos.Seen, repos.Setting, profile.NewFileStore(cfg.Profile.Path), engine.Params{
		Fetch: engine.FetchParams{
			Limit:             cfg.Booru.PageLimit,
			MaxPages:          cfg.Booru.MaxPages,
			Delay:             cfg.Booru.Delay,
			MinPostScore:      cfg.Feed.MinPostScore,
			MaxQueryBlacklist: cfg.Booru.MaxQueryBlacklist,
		},
		IdleTimeout:     cfg.Feed.IdleTimeout,
		Ranked:          cfg.Feed.Ranked,
		MinLikelihood:   cfg.Feed.MinLikelihood,
		MinLikesForGate: cfg.Feed.MinLikesForGate,
		Scorer:          scorer,
	})
}

// printReport prints n most and least liked tags with rating scores
func printReport(ctx context.Context, eng *engine.Engine, n int) error {
	report, err := eng.ProfileReport(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Fprintf(stdout, "liked posts: %d, disliked posts: %d\n", report.TotalLiked, report.TotalDisliked)
	printEntries := func(title string, entries []profile.Entry) {
		fmt.Fprintf(stdout, "\n%s:\n", title)
		if len(entries) == 0 {
			fmt.Fprintln(stdout, "  none")
			return
		}
		for i, e := range entries {
			fmt.Fprintf(stdout, "%3d. %-40s %+5d (%d reactions)\n", i+1, e.Name, e.Score, e.Total)
		}
	}
	printEntries("top tags", report.TopTags)
	printEntries("bottom tags", report.BottomTags)
	printEntries("ratings", report.Ratings)
	return nil
}

func entryNames(entries []profile.Entry) []string {
	res := make([]string, len(entries))
	for i, e := range entries {
		res[i] = e.Name
	}
	return res
}

// SetupLog configures lgr and redirects the standard logger to it
func SetupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
