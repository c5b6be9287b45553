// Command admin manages administrator accounts from the shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"elfatih/internal/config"
	"elfatih/internal/database"
	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/service"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin promote <user_id|username>   - Grant the ADMIN role")
	fmt.Println("  go run ./cmd/admin demote <user_id|username>    - Revoke the ADMIN role")
	fmt.Println("  go run ./cmd/admin list-admins                  - List all admins")
	fmt.Println("  go run ./cmd/admin create-admin -username <name> -email <email> -password <pw> [-full-name <name>]")
	fmt.Println("  go run ./cmd/admin stats                        - Show account counts")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := service.NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "promote", "demote":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		role := models.RoleAdmin
		if cmd == "demote" {
			role = models.RoleUser
		}
		err = setRole(ctx, users, os.Args[2], role)
	case "list-admins":
		err = listAdmins(ctx, users)
	case "create-admin":
		err = createAdmin(ctx, users, os.Args[2:])
	case "stats":
		err = printStats(ctx, users)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("❌ %s failed: %v", os.Args[1], err)
	}
}

// setRole accepts a numeric ID or a username.
func setRole(ctx context.Context, users *service.UserService, ref string, role models.Role) error {
	var (
		user *models.User
		err  error
	)
	if id, convErr := strconv.ParseUint(ref, 10, 64); convErr == nil {
		// The CLI acts as a system admin, so the self-demotion guard does not apply.
		user, err = users.SetRole(ctx, service.Actor{Role: models.RoleAdmin}, uint(id), role)
	} else {
		user, err = users.SetRoleByUsername(ctx, ref, role)
	}
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s (ID: %d) is now %s\n", user.Username, user.ID, user.UserType)
	return nil
}

func listAdmins(ctx context.Context, users *service.UserService) error {
	admins, err := users.ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return nil
	}

	fmt.Println("\n📋 Current Admins:")
	fmt.Println("─────────────────────────────────────")
	for _, admin := range admins {
		status := "active"
		if !admin.IsActive {
			status = "inactive"
		}
		fmt.Printf("ID: %d | Username: %s | Email: %s | %s\n", admin.ID, admin.Username, admin.Email, status)
	}
	fmt.Println("─────────────────────────────────────")
	return nil
}

func createAdmin(ctx context.Context, users *service.UserService, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := fs.String("username", "", "login name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "initial password")
	fullName := fs.String("full-name", "Administrator", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := users.AdminCreate(ctx, service.CreateUserInput{
		RegisterInput: service.RegisterInput{
			Username: *username,
			Email:    *email,
			FullName: *fullName,
			Password: *password,
		},
		UserType: models.RoleAdmin,
	})
	if err != nil {
		return err
	}
	fmt.Printf("✅ Created admin %s (ID: %d)\n", user.Username, user.ID)
	return nil
}

func printStats(ctx context.Context, users *service.UserService) error {
	stats, err := users.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total=%d active=%d inactive=%d admins=%d users=%d\n",
		stats.TotalUsers, stats.ActiveUsers, stats.InactiveUsers, stats.AdminUsers, stats.RegularUsers)
	return nil
}
