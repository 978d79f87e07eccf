// Command create-user registers a user explicitly, for operators and test
// environments that need an account to exist before any login email is sent.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/listling/listling/internal/model"
	"github.com/listling/listling/internal/repository"
)

type output struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Email address of the user to create")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user := &model.User{
		ID:        ulid.Make().String(),
		Email:     *email,
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			fmt.Fprintf(os.Stderr, "user %s already exists\n", *email)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	if *format == "json" {
		json.NewEncoder(os.Stdout).Encode(output{UserID: user.ID, Email: user.Email})
		return
	}

	fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
}
