package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"laneglide-server/config"
	"laneglide-server/protocol"
)

// Session binds one connected client to its own isolated world. There is no
// interaction between sessions; hosting many of them is capacity, not
// multiplayer.
type Session struct {
	client    *Client
	world     *World
	name      string
	tick      int
	lastState GameState
}

// GameServer owns all sessions and drives their worlds from a single ticker.
// All world mutation (ticks and input events alike) happens under mu, so a
// state transition always completes before anything else observes the world.
type GameServer struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	register   chan *Client
	unregister chan *Client
	store      ScoreStore
	textures   map[string]string

	startedAt     time.Time
	lastTick      time.Time
	gamesStarted  int
	gamesFinished int
	bestThisBoot  float64
}

// NewGameServer creates a game server persisting scores through store.
func NewGameServer(store ScoreStore) *GameServer {
	return &GameServer{
		sessions:   make(map[string]*Session),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		store:      store,
		textures:   map[string]string{},
		startedAt:  time.Now(),
	}
}

// SetTextures installs the resolved texture manifest forwarded to clients.
func (s *GameServer) SetTextures(textures map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textures = textures
}

func (s *GameServer) Run() {
	go s.listenForClients()
	go s.gameLoop()
}

func (s *GameServer) listenForClients() {
	log.Println("Starting client listener...")
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.sessions[client.playerID] = client.session
			s.mu.Unlock()
			log.Printf("Session %s: registered (%d active)", client.playerID, s.ActiveSessions())
		case client := <-s.unregister:
			s.mu.Lock()
			if sess, ok := s.sessions[client.playerID]; ok {
				s.gamesStarted += sess.world.GamesBegun
				s.gamesFinished += sess.world.GamesFinished
				delete(s.sessions, client.playerID)
				close(client.send)
			}
			s.mu.Unlock()
			log.Printf("Session %s: unregistered (%d active)", client.playerID, s.ActiveSessions())
		}
	}
}

// gameLoop advances every session's world once per tick. Delta time is wall
// clock since the previous tick; the world clamps it against stalls.
func (s *GameServer) gameLoop() {
	ticker := time.NewTicker(config.SIM_TICK_INTERVAL)
	defer ticker.Stop()

	s.mu.Lock()
	s.lastTick = time.Now()
	s.mu.Unlock()

	for range ticker.C {
		now := time.Now()

		s.mu.Lock()
		dt := now.Sub(s.lastTick).Seconds()
		s.lastTick = now

		for id, sess := range s.sessions {
			sess.world.Step(dt)
			sess.tick++
			s.observeTransition(id, sess)
			if sess.tick%config.BROADCAST_EVERY == 0 {
				s.sendState(sess)
			}
		}
		s.mu.Unlock()
	}
}

// observeTransition reacts to state edges since the last tick: a run ending
// commits the score to the store and notifies the client. Called under mu.
func (s *GameServer) observeTransition(id string, sess *Session) {
	prev := sess.lastState
	cur := sess.world.State
	sess.lastState = cur
	if prev == cur {
		return
	}

	switch cur {
	case StatePlaying:
		log.Printf("Session %s: run started", id)
	case StateGameOver:
		w := sess.world
		newBest := w.Score >= w.HighScore
		log.Printf("Session %s: game over, score=%.1f high=%.1f elapsed=%.1fs",
			id, w.Score, w.HighScore, w.Elapsed)
		if w.HighScore > s.bestThisBoot {
			s.bestThisBoot = w.HighScore
		}
		s.persistScore(id, sess)
		s.sendGameOver(sess, newBest)
	}
}

// persistScore submits the finished run to the score store. Runs in its own
// goroutine: the tick loop never blocks on persistence.
func (s *GameServer) persistScore(id string, sess *Session) {
	entry := ScoreEntry{
		PlayerID:   id,
		PlayerName: sess.name,
		Score:      sess.world.Score,
		Duration:   sess.world.Elapsed,
		CreatedAt:  time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.Submit(ctx, entry); err != nil {
			log.Printf("Session %s: score submit failed: %v", id, err)
		}
	}()
}

func (s *GameServer) sendState(sess *Session) {
	b, err := protocol.Encode(protocol.MsgState, buildStateSnapshot(sess))
	if err != nil {
		log.Printf("Session %s: snapshot encode failed: %v", sess.client.playerID, err)
		return
	}
	sess.client.trySend(b)
}

func (s *GameServer) sendGameOver(sess *Session, newBest bool) {
	w := sess.world
	b, err := protocol.Encode(protocol.MsgGameOver, protocol.GameOver{
		Score:     w.Score,
		HighScore: w.HighScore,
		Elapsed:   w.Elapsed,
		NewBest:   newBest,
	})
	if err != nil {
		return
	}
	sess.client.trySend(b)
}

// ActiveSessions returns the current number of connected sessions.
func (s *GameServer) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stats is a point-in-time counters snapshot for the metrics endpoint.
type Stats struct {
	ActiveSessions int     `json:"active_sessions"`
	GamesStarted   int     `json:"games_started"`
	GamesFinished  int     `json:"games_finished"`
	BestScore      float64 `json:"best_score"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// SnapshotStats aggregates live and departed sessions.
func (s *GameServer) SnapshotStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		ActiveSessions: len(s.sessions),
		GamesStarted:   s.gamesStarted,
		GamesFinished:  s.gamesFinished,
		BestScore:      s.bestThisBoot,
		UptimeSeconds:  time.Since(s.startedAt).Seconds(),
	}
	for _, sess := range s.sessions {
		st.GamesStarted += sess.world.GamesBegun
		st.GamesFinished += sess.world.GamesFinished
		if sess.world.HighScore > st.BestScore {
			st.BestScore = sess.world.HighScore
		}
	}
	return st
}

// newSessionWorld builds a world with a time-seeded RNG and the player's
// persisted high score preloaded.
func (s *GameServer) newSessionWorld(playerID string) *World {
	w := NewWorld(rand.New(rand.NewSource(time.Now().UnixNano())))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	best, err := s.store.BestScore(ctx, playerID)
	if err != nil {
		log.Printf("Session %s: could not load best score: %v", playerID, err)
		best = 0
	}
	w.HighScore = best
	return w
}
