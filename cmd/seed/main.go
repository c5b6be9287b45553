// Command seed fills the database with demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"elfatih/internal/bootstrap"
	"elfatih/internal/config"
	"elfatih/internal/database"
	"elfatih/internal/repository"
	"elfatih/internal/seed"
	"elfatih/internal/service"
)

func main() {
	opts := seed.DefaultOptions
	flag.IntVar(&opts.NumUsers, "users", opts.NumUsers, "accounts to create")
	flag.IntVar(&opts.NumAdmins, "admins", opts.NumAdmins, "how many of the accounts are admins")
	flag.IntVar(&opts.NumPosts, "posts", opts.NumPosts, "posts to create")
	flag.IntVar(&opts.MaxSections, "sections", opts.MaxSections, "maximum sections per post")
	flag.IntVar(&opts.NumDevices, "devices", opts.NumDevices, "devices to create")
	flag.BoolVar(&opts.WithImages, "images", opts.WithImages, "attach generated images")
	flag.Int64Var(&opts.RandSeed, "seed", 0, "random seed for a reproducible dataset (0 picks one)")
	clean := flag.Bool("clean", true, "empty every table first")
	flag.Parse()

	sum, err := run(context.Background(), opts, *clean)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d users, %d posts (%d sections), %d feedback, %d devices",
		sum.Users, sum.Posts, sum.Sections, sum.Feedback, sum.Devices)
	log.Printf("every seeded account uses the password %q", seed.DemoPassword)
}

func run(ctx context.Context, opts seed.Options, clean bool) (*seed.Summary, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := seed.NewSeeder(db, cfg, opts.RandSeed)
	if clean {
		if err := s.ClearAll(); err != nil {
			return nil, fmt.Errorf("clear: %w", err)
		}
	}
	sum, err := s.Seed(ctx, opts)
	if err != nil {
		return sum, err
	}

	// Clearing also drops the root admin.
	users := service.NewUserService(repository.NewUserRepository(db))
	if err := bootstrap.EnsureRootAdmin(ctx, cfg, users); err != nil {
		return sum, fmt.Errorf("root admin: %w", err)
	}
	return sum, nil
}
