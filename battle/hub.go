package battle

import (
	"log"
	"sync"
	"time"
)

// Phase is the server-side room state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseActive
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "ACTIVE"
	case PhaseResolved:
		return "RESOLVED"
	default:
		return "WAITING"
	}
}

// Room is one focus-battle pairing. Created implicitly on first join, never
// destroyed explicitly; the reaper collects it once abandoned.
type Room struct {
	ID         string
	Phase      Phase
	clients    []*Client
	lastActive time.Time
}

// Hub owns every battle room. All membership and phase changes happen under
// its mutex, so events within one room are serialized and rooms are fully
// isolated from each other.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*Room
	now   func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*Room),
		now:   time.Now,
	}
}

// JoinRoom adds the client to the room, creating it when absent, and announces
// the arrival to everyone already there (not the joiner). No capacity cap and
// no duplicate-name handling, matching the existing client contract.
func (h *Hub) JoinRoom(c *Client, roomID, username string) {
	if roomID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	room, ok := h.rooms[roomID]
	if !ok {
		room = &Room{ID: roomID, Phase: PhaseWaiting}
		h.rooms[roomID] = room
	}
	room.lastActive = h.now()

	c.name = username
	c.room = roomID
	for _, other := range room.clients {
		other.enqueue(encode(EventUserJoined, username))
	}
	room.clients = append(room.clients, c)
	log.Printf("⚔️ %s joined battle room %s (%d members)", username, roomID, len(room.clients))
}

// StartBattle moves the room WAITING → ACTIVE and tells every member,
// including the requester. Unknown rooms and rooms already past WAITING are
// silently inert.
func (h *Hub) StartBattle(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok || room.Phase != PhaseWaiting {
		return
	}
	room.Phase = PhaseActive
	room.lastActive = h.now()
	for _, member := range room.clients {
		member.enqueue(encode(EventBattleStarted, nil))
	}
	log.Printf("🔥 Battle started in room %s", roomID)
}

// ReportFocusLoss resolves an active battle against the reporter. The reporter
// hears the defeat variant, every other member the victory variant; both carry
// the literal winner "Opponent" (clients render by perspective, not identity).
// Reports outside an ACTIVE room are dropped, which also makes a second report
// for an already-resolved session a no-op.
func (h *Hub) ReportFocusLoss(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok || room.Phase != PhaseActive {
		return
	}
	room.Phase = PhaseResolved
	room.lastActive = h.now()

	var outcome ForfeitOutcome
	for _, member := range room.clients {
		perspective := PerspectiveWinner
		if member == c {
			perspective = PerspectiveLoser
		}
		member.enqueue(encode(EventGameOver, outcome.Payload(perspective)))
	}
	log.Printf("🏳️ %s forfeited battle in room %s", c.name, roomID)
}

// Disconnect drops the client from its room. No forfeiture broadcast: a
// transport close mid-battle only shrinks membership.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if c.room == "" {
		return
	}
	room, ok := h.rooms[c.room]
	c.room = ""
	if !ok {
		return
	}
	for i, member := range room.clients {
		if member == c {
			room.clients = append(room.clients[:i], room.clients[i+1:]...)
			break
		}
	}
	room.lastActive = h.now()
}

// RoomCount reports how many rooms the hub currently tracks.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// ReapIdleRooms drops abandoned rooms: empty ones immediately, and occupied
// rooms that are not mid-battle once they have sat idle past maxIdle. Active
// battles are never evicted. Returns the number of rooms removed.
func (h *Hub) ReapIdleRooms(maxIdle time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-maxIdle)
	reaped := 0
	for id, room := range h.rooms {
		if len(room.clients) == 0 || (room.Phase != PhaseActive && room.lastActive.Before(cutoff)) {
			for _, member := range room.clients {
				member.room = ""
			}
			delete(h.rooms, id)
			reaped++
		}
	}
	return reaped
}
