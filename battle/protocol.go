package battle

import "encoding/json"

// Wire event names, shared with the browser client.
const (
	EventJoinRoom        = "join_room"
	EventUserJoined      = "user_joined"
	EventStartBattle     = "start_battle"
	EventBattleStarted   = "battle_started"
	EventPlayerLostFocus = "player_lost_focus"
	EventGameOver        = "game_over"
)

// Envelope frames every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinRoomPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

type StartBattlePayload struct {
	Room string `json:"room"`
}

type LostFocusPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// GameOverPayload is rendered by the client from its own perspective: the
// winner field is always the literal "Opponent" and only the reason differs
// between the forfeiting side and everyone else. Clients depend on these exact
// strings, so they are fixed here.
type GameOverPayload struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

// Perspective tags which side of a resolved battle a recipient is on.
type Perspective int

const (
	PerspectiveWinner Perspective = iota
	PerspectiveLoser
)

// ForfeitOutcome is computed once when a participant forfeits and rendered per
// recipient.
type ForfeitOutcome struct{}

func (ForfeitOutcome) Payload(p Perspective) GameOverPayload {
	if p == PerspectiveLoser {
		return GameOverPayload{Winner: "Opponent", Reason: "You switched tabs! Defeat."}
	}
	return GameOverPayload{Winner: "Opponent", Reason: "Opponent switched tabs!"}
}

// encode builds an outbound frame. Payload types are all marshalable, so an
// error here would be a programming bug; it degrades to an event with no data.
func encode(event string, data interface{}) []byte {
	env := Envelope{Event: event}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			env.Data = raw
		}
	}
	out, _ := json.Marshal(env)
	return out
}
