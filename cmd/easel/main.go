package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/marchand/easel/internal/canon"
	"github.com/marchand/easel/internal/config"
	"github.com/marchand/easel/internal/dataurl"
	"github.com/marchand/easel/internal/domain"
	"github.com/marchand/easel/internal/gallery"
	applog "github.com/marchand/easel/internal/log"
	"github.com/marchand/easel/internal/render"
	"github.com/marchand/easel/internal/session"
	"github.com/marchand/easel/internal/source"
	"github.com/marchand/easel/internal/store"
	"github.com/marchand/easel/internal/tui"
)

var version = "dev"

type openCmd struct {
	Plain   bool   `arg:"--plain" help:"unstyled output for pipes"`
	HTML    string `arg:"--html" placeholder:"PATH" help:"write a self-contained HTML page instead of a card"`
	Save    string `arg:"--save" placeholder:"PATH" help:"save the image to PATH"`
	Artist  string `arg:"--artist" placeholder:"NAME" help:"pin the query to one artist (fuzzy matched)"`
	NoCache bool   `arg:"--no-cache" help:"ignore the cache slot for this session"`
}

type refillCmd struct{}

type artistsCmd struct {
	Query string `arg:"positional" help:"optional fuzzy filter"`
}

type sourcesCmd struct{}

type clearCmd struct{}

type args struct {
	Open    *openCmd    `arg:"subcommand:open" help:"display one artwork and exit"`
	Refill  *refillCmd  `arg:"subcommand:refill" help:"fetch, encode and store the next artwork"`
	Artists *artistsCmd `arg:"subcommand:artists" help:"list the artist canon"`
	Sources *sourcesCmd `arg:"subcommand:sources" help:"list the museum sources"`
	Clear   *clearCmd   `arg:"subcommand:clear" help:"delete the cache slot"`
}

func (args) Version() string {
	return "easel " + version
}

func (args) Description() string {
	return "easel - an Impressionist painting for every new terminal tab"
}

func main() {
	var cli args
	arg.MustParse(&cli)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "easel: %v\n", err)
		os.Exit(1)
	}

	logger, err := applog.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Logging is not worth dying over
		logger = applog.NullLogger()
	}

	if err := run(cli, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "easel: %v\n", err)
		os.Exit(1)
	}
}

func run(cli args, cfg *config.Config, logger *slog.Logger) error {
	baseCanon := canon.Default().WithExtra(cfg.Artists...)
	rng := domain.NewRand()

	switch {
	case cli.Artists != nil:
		for _, name := range baseCanon.Filter(cli.Artists.Query) {
			fmt.Println(name)
		}
		return nil

	case cli.Sources != nil:
		printSources(cfg)
		return nil
	}

	cacheDir := cfg.Cache.Dir
	if cfg.Cache.Disabled || (cli.Open != nil && cli.Open.NoCache) {
		cacheDir = "" // memory-only, every session cold
	}
	st, err := store.Open(cacheDir)
	if err != nil {
		// Another easel process holds the database lock, or the directory is
		// unusable. Run memory-only; this session is just a cold start.
		logger.Warn("cache store unavailable, running memory-only", "error", err)
		st, err = store.Open("")
		if err != nil {
			return err
		}
	}
	defer st.Close()

	newController := func(pin string, r domain.Renderer) (*session.Controller, error) {
		cn := baseCanon
		if pin != "" {
			pinned, err := cn.Only(pin)
			if err != nil {
				return nil, err
			}
			cn = pinned
		}
		g := gallery.New(source.Build(cfg, cn, rng, logger), rng, logger)
		enc := dataurl.NewEncoder(cfg.Timeout(), cfg.MaxImageBytes(), logger)
		return session.New(g, enc, st, r, logger), nil
	}

	loader := render.NewLoader(cfg.Timeout(), logger)
	ctx := context.Background()

	switch {
	case cli.Open != nil:
		var r domain.Renderer
		if cli.Open.HTML != "" {
			r = render.NewHTMLFile(cli.Open.HTML, loader, logger)
		} else {
			r = render.NewTerminal(os.Stdout, loader, cli.Open.Save, cli.Open.Plain, logger)
		}

		ctrl, err := newController(cli.Open.Artist, r)
		if err != nil {
			return err
		}
		if _, err := ctrl.Start(ctx); err != nil {
			ctrl.Wait()
			return err
		}
		// Exit only after the background refill has settled.
		ctrl.Wait()

		if cli.Open.HTML != "" {
			return render.OpenInBrowser(cli.Open.HTML)
		}
		return nil

	case cli.Refill != nil:
		ctrl, err := newController("", render.Null{})
		if err != nil {
			return err
		}
		return ctrl.Refill(ctx)

	case cli.Clear != nil:
		ctrl, err := newController("", render.Null{})
		if err != nil {
			return err
		}
		return ctrl.Clear()

	default:
		app := &tui.App{
			NewController: newController,
			Loader:        loader,
			Artists:       baseCanon.Names(),
			Logger:        logger,
		}
		return app.Run()
	}
}

func printSources(cfg *config.Config) {
	type state struct {
		cfg  config.SourceConfig
		name string
	}
	states := []state{
		{cfg.Sources.Met, domain.SourceMet},
		{cfg.Sources.AIC, domain.SourceAIC},
		{cfg.Sources.VAM, domain.SourceVAM},
		{cfg.Sources.Cleveland, domain.SourceCleveland},
	}
	for _, s := range states {
		status := "enabled"
		if s.cfg.Disabled {
			status = "disabled"
		}
		if s.cfg.Endpoint != "" {
			fmt.Printf("%s\t%s\t%s\n", s.name, status, s.cfg.Endpoint)
		} else {
			fmt.Printf("%s\t%s\n", s.name, status)
		}
	}
}
