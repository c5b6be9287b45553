// Command migrate inspects and changes the database schema.
//
//	migrate up              apply pending SQL migrations
//	migrate down <version>  revert one migration
//	migrate auto            run GORM AutoMigrate for every model
//	migrate status          show the schema plan and pending scripts
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"elfatih/internal/config"
	"elfatih/internal/database"
)

var errUsage = errors.New("usage: migrate <up|down VERSION|auto|status>")

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
	if err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "up":
		migrator, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		ran, err := migrator.Up(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("applied %d migration(s)\n", len(ran))
		for _, m := range ran {
			fmt.Println("  " + m.String())
		}

	case "down":
		if len(args) < 2 {
			return errUsage
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		migrator, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		if err := migrator.Down(ctx, version); err != nil {
			return err
		}
		fmt.Printf("reverted migration %d\n", version)

	case "auto":
		cfg.DBSchemaMode = database.SchemaModeAuto
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return err
		}
		fmt.Println("automigrate complete")

	case "status":
		status, err := database.Status(ctx, db, cfg)
		if err != nil {
			return err
		}
		printStatus(status)

	default:
		return errUsage
	}
	return nil
}

func printStatus(s *database.SchemaStatus) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "mode\t%s\n", s.Mode)
	fmt.Fprintf(w, "env\t%s\n", s.Environment)
	fmt.Fprintf(w, "sql migrations\t%t\n", s.RunSQL)
	fmt.Fprintf(w, "automigrate\t%t\n", s.RunAuto)
	fmt.Fprintf(w, "applied\t%d\n", len(s.AppliedVersions))
	for _, m := range s.PendingMigrations {
		fmt.Fprintf(w, "pending\t%s\n", m)
	}
	_ = w.Flush()
}
