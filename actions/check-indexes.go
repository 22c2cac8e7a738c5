package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/suncar/seeder/database"
)

const (
	ModeDryRun = "dry-run"
	ModeLive   = "live"
)

// IndexStore is the part of a collection the index check needs.
type IndexStore interface {
	Name() string
	EnsureIndexes(ctx context.Context, specs []database.IndexSpec) error
	ListIndexKeys(ctx context.Context) (map[string]struct{}, error)
}

type CheckIndexesConfig struct {
	MongoURI            string
	MongoHost           string
	MongoPort           string
	DatabaseCredentials string
	MongoUsername       string
	MongoPassword       string

	DBName     string
	Collection string
	Mode       string
	AutoFix    bool
}

func (c *CheckIndexesConfig) ApplyDefaults() {
	if c.MongoURI == "" && c.MongoHost == "" {
		c.MongoURI = DefaultMongoURI
	}
	if c.DBName == "" {
		c.DBName = DefaultDBName
	}
	if c.Collection == "" {
		c.Collection = DefaultWorkOrderCollection
	}
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeDryRun
	}
}

// RunCheckIndexes compares the work order indexes with what the collection
// has. In live mode the missing ones are created when autoFix is set or
// confirm returns true. It returns the indexes that are still missing.
func RunCheckIndexes(ctx context.Context, store IndexStore, out io.Writer, mode string, autoFix bool, confirm func() bool) ([]database.IndexSpec, error) {
	existing, err := store.ListIndexKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexes for %s: %w", store.Name(), err)
	}

	missing := database.MissingIndexes(database.WorkOrderIndexSpecs(), existing)
	if len(missing) == 0 {
		fmt.Fprintln(out, "")
		fmt.Fprintf(out, "[ok] all work order indexes present on %s.\n", store.Name())
		fmt.Fprintln(out, "")
		return nil, nil
	}

	fmt.Fprintln(out, "")
	fmt.Fprintf(out, ">> Collection: %s\n", store.Name())
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  +------------------------------+-----------------------------------------------+---------+")
	fmt.Fprintln(out, "  | Name                         | Key                                           | Unique  |")
	fmt.Fprintln(out, "  +------------------------------+-----------------------------------------------+---------+")
	for _, m := range missing {
		fmt.Fprintf(out, "  | %-28s | %-45s | %-7v |\n", m.Name, database.KeyAsJS(m.Key), m.Unique)
	}
	fmt.Fprintln(out, "  +------------------------------+-----------------------------------------------+---------+")
	fmt.Fprintf(out, "\n[summary] missing_total=%d auto_fix=%v mode=%s\n", len(missing), autoFix, mode)

	if !strings.EqualFold(mode, ModeLive) {
		fmt.Fprintln(out, "[info] dry-run mode: skipping index creation and prompts.")
		return missing, nil
	}

	proceed := autoFix
	if !autoFix && confirm != nil {
		proceed = confirm()
	}
	if !proceed {
		fmt.Fprintln(out, "[info] skipping index creation. Re-run with -auto-fix to create without prompt.")
		return missing, nil
	}

	fmt.Fprintf(out, "[action] creating %d missing index(es)...\n", len(missing))
	if err := store.EnsureIndexes(ctx, missing); err != nil {
		return missing, fmt.Errorf("create indexes on %s: %w", store.Name(), err)
	}
	for _, m := range missing {
		fmt.Fprintf(out, "  [ok] created %s/%s\n", store.Name(), m.Name)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "[done] index creation pass complete.")
	return nil, nil
}

func CheckIndexes(cfg CheckIndexesConfig) {
	HandleSignals()
	cfg.ApplyDefaults()
	reportConnection(cfg.MongoURI, cfg.MongoHost, cfg.MongoPort)
	reportSource("db", cfg.DBName)
	reportSource("work-order-collection", cfg.Collection)
	reportSource("mode", cfg.Mode)

	ctx := context.Background()
	db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoHost, cfg.MongoPort,
		cfg.DatabaseCredentials, cfg.MongoUsername, cfg.MongoPassword)
	if err != nil {
		fmt.Printf("[error] %v\n", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	store := database.NewWorkOrderCollection(db.Client, cfg.DBName, cfg.Collection)
	confirm := func() bool {
		return PromptBool("Create the missing indexes now? (y/N): ", false)
	}
	if _, err := RunCheckIndexes(ctx, store, os.Stdout, cfg.Mode, cfg.AutoFix, confirm); err != nil {
		fmt.Printf("[error] check-indexes: %v\n", err)
		db.Close(context.Background())
		os.Exit(1)
	}
}
