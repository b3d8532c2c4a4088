package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"laneglide-server/api"
	game "laneglide-server/src"
)

// Imports a score entry into a running server, authenticating with an admin
// token generated from the same env the server reads. Useful for migrating
// leaderboards between deployments.
//
// Usage: score_export <player_id> <player_name> <score> [api_base]
func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: score_export <player_id> <player_name> <score> [api_base]")
		os.Exit(1)
	}
	apiBase := "http://localhost:8080"
	if len(os.Args) > 4 {
		apiBase = os.Args[4]
	}

	var score float64
	if _, err := fmt.Sscanf(os.Args[3], "%f", &score); err != nil || score < 0 {
		fmt.Fprintf(os.Stderr, "error: invalid score %q\n", os.Args[3])
		os.Exit(1)
	}

	entry := game.ScoreEntry{
		PlayerID:   os.Args[1],
		PlayerName: os.Args[2],
		Score:      score,
		CreatedAt:  time.Now(),
	}

	cfg := api.LoadConfig()
	token, err := api.GenerateToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.AdminUsername, api.RoleAdmin, time.Hour)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not generate admin token: %v\n", err)
		os.Exit(1)
	}

	body, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not marshal entry: %v\n", err)
		os.Exit(1)
	}
	req, err := http.NewRequest(http.MethodPost, apiBase+"/api/v1/scores", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: building request failed: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: API request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "error: API create returned status %s\n", resp.Status)
		os.Exit(1)
	}
	fmt.Printf("Created score entry for %s (%.1f) via API.\n", entry.PlayerID, entry.Score)
}
