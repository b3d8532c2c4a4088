package game

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"laneglide-server/config"
	"laneglide-server/protocol"
)

// HandleConnections upgrades /ws requests and spins up a session.
func (s *GameServer) HandleConnections(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// Allow all origins for development. RESTRICT THIS IN PRODUCTION!
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	if s.ActiveSessions() >= config.MAX_SESSIONS {
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	playerID := uuid.New().String()
	world := s.newSessionWorld(playerID)

	client := NewClient(conn, playerID)
	sess := &Session{
		client:    client,
		world:     world,
		lastState: world.State,
	}
	client.session = sess

	initMsg, err := protocol.Encode(protocol.MsgInit, s.buildInitPayload(playerID, world))
	if err != nil {
		log.Printf("Client %s: init encode failed: %v", playerID, err)
		conn.Close()
		return
	}
	client.trySend(initMsg)

	s.register <- client
	go client.writePump()
	go client.readPump(s)
}

// buildInitPayload is everything the render collaborator needs to build the
// scene, plus fallback colors and whatever textures exist on disk.
func (s *GameServer) buildInitPayload(playerID string, w *World) protocol.Init {
	colors := make(map[string][4]int, len(config.Palette))
	for name, c := range config.Palette {
		colors[name] = c
	}
	return protocol.Init{
		PlayerID:      playerID,
		TickHz:        protocol.SimTickHz,
		LaneCount:     LaneCount,
		LaneSpacing:   LaneSpacing,
		SegmentCount:  SegmentCount,
		SegmentLength: SegmentLength,
		TrackWidth:    TrackWidth,
		CameraZ:       CameraZ,
		PlayerRadius:  PlayerRadius,
		HighScore:     w.HighScore,
		Colors:        colors,
		Textures:      s.textures,
	}
}

// handleClientMessage dispatches one frame from a client. Input events only
// mutate the session's gesture state and pending target lane; consumption
// happens on the next tick under the same mutex.
func (s *GameServer) handleClientMessage(c *Client, message []byte) {
	env, err := protocol.DecodeEnvelope(message)
	if err != nil {
		log.Printf("Client %s: bad frame: %v", c.playerID, err)
		return
	}

	switch env.T {
	case protocol.MsgHello:
		hello, err := protocol.DecodePayload[protocol.Hello](env)
		if err != nil {
			log.Printf("Client %s: bad hello: %v", c.playerID, err)
			return
		}
		s.mu.Lock()
		if sess, ok := s.sessions[c.playerID]; ok {
			sess.name = hello.Name
		}
		s.mu.Unlock()

	case protocol.MsgPointer:
		ptr, err := protocol.DecodePayload[protocol.Pointer](env)
		if err != nil {
			log.Printf("Client %s: bad pointer event: %v", c.playerID, err)
			return
		}
		s.mu.Lock()
		sess, ok := s.sessions[c.playerID]
		if ok {
			switch ptr.Phase {
			case protocol.PhasePress:
				sess.world.PointerPress(ptr.X)
			case protocol.PhaseMove:
				sess.world.PointerMove(ptr.X)
			case protocol.PhaseRelease:
				sess.world.PointerRelease()
				s.observeTransition(c.playerID, sess)
			}
		}
		s.mu.Unlock()

	default:
		log.Printf("Client %s: unknown message type %q", c.playerID, env.T)
	}
}
