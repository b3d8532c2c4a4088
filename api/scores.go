package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	game "laneglide-server/src"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scoresCollection = "scores"

// MongoScoreStore persists finished runs; it is the game server's
// persistence collaborator.
type MongoScoreStore struct {
	col *mongo.Collection
}

func NewMongoScoreStore(db *DB) *MongoScoreStore {
	return &MongoScoreStore{col: db.Collection(scoresCollection)}
}

// BestScore returns the highest score ever persisted for the player, 0 if
// the player has no runs yet.
func (s *MongoScoreStore) BestScore(ctx context.Context, playerID string) (float64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "score", Value: -1}})
	var entry game.ScoreEntry
	err := s.col.FindOne(ctx, bson.M{"player_id": playerID}, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Score, nil
}

// Submit inserts one finished run.
func (s *MongoScoreStore) Submit(ctx context.Context, entry game.ScoreEntry) error {
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// EnsureScoreIndexes creates the leaderboard and per-player indexes.
func EnsureScoreIndexes(ctx context.Context, db *DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := db.Collection(scoresCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "score", Value: -1}}},
		{Keys: bson.D{{Key: "player_id", Value: 1}, {Key: "score", Value: -1}}},
	})
	return err
}

// ScoreHandler groups dependencies for the score routes.
type ScoreHandler struct {
	cfg Config
	db  *DB
	col *mongo.Collection
}

func NewScoreHandler(cfg Config, db *DB) *ScoreHandler {
	return &ScoreHandler{cfg: cfg, db: db, col: db.Collection(scoresCollection)}
}

// Routes registers score routes.
func (h *ScoreHandler) Routes(r chi.Router) {
	// Public leaderboard (guest allowed)
	r.Get("/scores/leaderboard", h.Leaderboard)
	// Personal best for the authenticated user
	r.With(AuthMiddleware(h.cfg)).Get("/scores/me", h.Me)
	// Operator submission path (the game server writes directly through the store)
	r.With(AuthMiddleware(h.cfg), RequireRole(RoleModerator)).Post("/scores", h.Create)
}

// Leaderboard GET /scores/leaderboard?limit=10
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := clamp(parseInt(r.URL.Query().Get("limit"), 10), 1, 100)
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}}).SetLimit(int64(limit))
	cur, err := h.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cur.Close(ctx)
	var items []game.ScoreEntry
	if err := cur.All(ctx, &items); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := h.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		total = int64(len(items))
	}
	writeJSON(w, http.StatusOK, apiListResponse[game.ScoreEntry]{
		Items:      items,
		Page:       1,
		PageSize:   limit,
		TotalItems: total,
	})
}

// Me GET /scores/me — the caller's personal best.
func (h *ScoreHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := getClaims(r)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	opts := options.FindOne().SetSort(bson.D{{Key: "score", Value: -1}})
	var entry game.ScoreEntry
	if err := h.col.FindOne(ctx, bson.M{"player_id": claims.Sub}, opts).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			errorJSON(w, http.StatusNotFound, "no runs recorded")
			return
		}
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Create POST /scores — operator path for importing entries.
func (h *ScoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry game.ScoreEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if entry.PlayerID == "" || entry.Score < 0 {
		errorJSON(w, http.StatusBadRequest, "player_id required and score must be non-negative")
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if _, err := h.col.InsertOne(ctx, entry); err != nil {
		errorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
