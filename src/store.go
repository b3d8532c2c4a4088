package game

import (
	"context"
	"sync"
	"time"
)

// ScoreEntry is one finished run, as persisted.
type ScoreEntry struct {
	PlayerID   string    `json:"player_id" bson:"player_id"`
	PlayerName string    `json:"player_name" bson:"player_name"`
	Score      float64   `json:"score" bson:"score"`
	Duration   float64   `json:"duration" bson:"duration"` // seconds survived
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// ScoreStore is the persistence collaborator: the game server reads a
// player's best score when a session connects and submits a new entry
// whenever a run beats it. The Mongo-backed implementation lives in the api
// package; MemoryScoreStore serves tests and headless tooling.
type ScoreStore interface {
	BestScore(ctx context.Context, playerID string) (float64, error)
	Submit(ctx context.Context, entry ScoreEntry) error
}

// MemoryScoreStore keeps score entries in memory.
type MemoryScoreStore struct {
	mu      sync.RWMutex
	entries []ScoreEntry
}

func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{}
}

// BestScore returns the highest score recorded for the player, 0 if none.
func (s *MemoryScoreStore) BestScore(_ context.Context, playerID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := 0.0
	for _, e := range s.entries {
		if e.PlayerID == playerID && e.Score > best {
			best = e.Score
		}
	}
	return best, nil
}

// Submit records a finished run.
func (s *MemoryScoreStore) Submit(_ context.Context, entry ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}
