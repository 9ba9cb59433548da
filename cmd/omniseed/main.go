// Command omniseed loads development fixtures into Redis and runs ad hoc
// searches against them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/app"
	"github.com/kailas-cloud/omnisearch/internal/config"
	"github.com/kailas-cloud/omnisearch/internal/db"
	dbRedis "github.com/kailas-cloud/omnisearch/internal/db/redis"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/entity"
	"github.com/kailas-cloud/omnisearch/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/omnisearch/internal/logger"
	"github.com/kailas-cloud/omnisearch/internal/repository/schema"
	"github.com/kailas-cloud/omnisearch/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "omniseed",
		Usage:   "Development data loader for omnisearch",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment (config/{env}.yaml)",
				Value:   "local",
				EnvVars: []string{"ENV"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Explicit config file path (overrides --env)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "load",
				Usage:  "Create indexes and load a fixture",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "fixture",
						Aliases: []string{"f"},
						Usage:   "Path to the YAML fixture",
						Value:   "config/seed.yaml",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Run a query and print the ranked page as JSON",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "requester",
						Aliases:  []string{"r"},
						Usage:    "Requesting user id",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Result offset",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Page size",
						Value: query.DefaultPageSize,
					},
				},
			},
			{
				Name:   "reset",
				Usage:  "Drop every search index (documents are kept)",
				Action: resetCommand,
			},
		},
	}
}

// session is an opened store plus the wired pipeline.
type session struct {
	store  db.Store
	app    *app.App
	logger *zap.Logger
}

func (s *session) Close() {
	_ = s.logger.Sync()
	s.store.Close()
}

func openSession(c *cli.Context) (*session, error) {
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(c.String("env"))
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger("local", logpkg.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		Standalone: cfg.Database.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	if err := store.WaitForReady(c.Context, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	a, err := app.Build(store, app.SettingsFromConfig(&cfg), logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("wire pipeline: %w", err)
	}
	return &session{store: store, app: a, logger: logger}, nil
}

func loadCommand(c *cli.Context) error {
	fixture, err := LoadFixture(c.String("fixture"))
	if err != nil {
		return err
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.EnsureSchema(c.Context, s.logger); err != nil {
		return err //nolint:wrapcheck // already wrapped by app
	}

	seeder := &Seeder{
		profiles: s.app.Profiles,
		sitters:  s.app.Sitters,
		products: s.app.Products,
		graph:    s.app.Social,
	}
	st, err := seeder.Seed(c.Context, fixture)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Loaded %d profiles, %d sitters, %d products, %d follows, %d requests\n",
		st.Profiles, st.Sitters, st.Products, st.Follows, st.Requests)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("usage: omniseed search --requester ID QUERY")
	}
	page, err := query.NewPage(c.Int("offset"), c.Int("size"))
	if err != nil {
		return err //nolint:wrapcheck // validation message is user-facing
	}
	q, err := query.New(c.Args().First(), c.String("requester"), page, "")
	if err != nil {
		return err //nolint:wrapcheck // validation message is user-facing
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	resp, err := s.app.Search.Search(c.Context, q)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	type row struct {
		Rank  int     `json:"rank"`
		Ref   string  `json:"ref"`
		Name  string  `json:"name"`
		Kind  string  `json:"kind"`
		Score float64 `json:"score"`
	}
	out := struct {
		Total   int    `json:"total"`
		Partial bool   `json:"partial"`
		Token   string `json:"token"`
		Results []row  `json:"results"`
	}{Total: resp.Total, Partial: resp.Partial, Token: resp.Token, Results: []row{}}
	for i := range resp.Results {
		r := &resp.Results[i]
		out.Results = append(out.Results, row{
			Rank:  r.Rank(),
			Ref:   r.Ref().String(),
			Name:  r.Candidate().Name,
			Kind:  string(r.MatchKind()),
			Score: r.Score(),
		})
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out) //nolint:wrapcheck // stdout write
}

func resetCommand(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	return dropIndexes(c.Context, s.store, s.app.Keys, c.App.Writer)
}

type indexDropper interface {
	DropIndex(ctx context.Context, name string) error
}

func dropIndexes(ctx context.Context, store indexDropper, keys schema.Keys, w io.Writer) error {
	for _, t := range entity.All() {
		name := keys.Index(t)
		err := store.DropIndex(ctx, name)
		switch {
		case err == nil:
			fmt.Fprintf(w, "Dropped %s\n", name)
		case errors.Is(err, db.ErrIndexNotFound):
			fmt.Fprintf(w, "Skipped %s (not found)\n", name)
		default:
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}
