// Command seed-users inserts fixture users for local development and
// manual smoke testing. Existing usernames are left untouched.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		usernames   = flag.String("usernames", "test1,test2,test3,test4,test5", "Comma-separated usernames to seed")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, "ping database:", err)
		os.Exit(1)
	}

	seeded := 0
	for _, name := range strings.Split(*usernames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var id int64
		err := db.QueryRow(
			`INSERT INTO users (username) VALUES ($1)
			 ON CONFLICT (username) DO NOTHING
			 RETURNING user_id`,
			name,
		).Scan(&id)

		switch {
		case err == sql.ErrNoRows:
			fmt.Printf("skipped %s (already present)\n", name)
		case err != nil:
			fmt.Fprintln(os.Stderr, "insert user:", err)
			os.Exit(1)
		default:
			fmt.Printf("seeded %s (id %d)\n", name, id)
			seeded++
		}
	}

	fmt.Printf("done, %d users inserted\n", seeded)
}
