// Command admin manages the admin role from the command line. No HTTP
// endpoint grants or revokes the role.
//
// Usage:
//
//	admin list
//	admin promote <user-id>
//	admin demote <user-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"recurate/internal/config"
	"recurate/internal/database"
	"recurate/internal/repository"
	"recurate/internal/service"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	admins := service.NewAdminService(userRepo, postRepo)
	ctx := context.Background()

	switch args[0] {
	case "list":
		users, err := admins.ListUsers(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		for _, u := range users {
			role := ""
			if u.IsAdmin {
				role = " [admin]"
			}
			fmt.Printf("%4d  %s <%s>%s\n", u.ID, u.FullName, u.Email, role)
		}
	case "promote", "demote":
		if len(args) != 2 {
			usage()
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil || id == 0 {
			log.Fatalf("Invalid user ID %q", args[1])
		}
		if err := admins.SetAdmin(ctx, uint(id), args[0] == "promote"); err != nil {
			log.Fatalf("Failed to %s user %d: %v", args[0], id, err)
		}
		fmt.Printf("user %d %sd\n", id, args[0])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin list | promote <user-id> | demote <user-id>")
	os.Exit(2)
}
