// Command seedgen generates a seed document for the sandbox: a set of
// users and a timeline of posts with dense p_<n> ids and descending
// timestamps, in the same {users, posts} shape as the snapshot file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/feedlab/snsbox/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		userCount int
		postCount int
		out       string
	)

	flag.IntVar(&userCount, "users", 3, "number of seed users to generate")
	flag.IntVar(&postCount, "posts", 35, "number of seed posts to generate")
	flag.StringVar(&out, "out", "resources/seed.json", "output path, or - for stdout")
	flag.Parse()

	if userCount < 1 {
		return fmt.Errorf("--users must be at least 1")
	}
	if postCount < 0 {
		return fmt.Errorf("--posts must not be negative")
	}

	users := make([]domain.User, userCount)
	for i := range users {
		users[i] = domain.User{
			ID:          fmt.Sprintf("u_%d", i+1),
			DisplayName: fmt.Sprintf("User %d", i+1),
			AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/96?u=u_%d", i+1),
		}
	}

	// Newest first, so ids count down from p_<postCount> as timestamps
	// recede into the past.
	base := time.Now().UTC()
	posts := make([]domain.Post, postCount)
	for i := range posts {
		n := postCount - i
		posts[i] = domain.Post{
			ID:        fmt.Sprintf("p_%d", n),
			Author:    users[(n-1)%len(users)],
			Text:      fmt.Sprintf("Seed post %d", n),
			LikeCount: (n * 7) % 23,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}

	snap := domain.Snapshot{Users: users, Posts: posts}
	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	data = append(data, '\n')

	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Printf("wrote %s (%d users, %d posts)\n", out, userCount, postCount)
	return nil
}
