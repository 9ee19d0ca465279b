package battle

import "testing"

// dispatch is exercised with raw frames, the same bytes a browser client sends.
func TestDispatchDrivesFullSession(t *testing.T) {
	hub := NewHub()
	a, b := NewClient(hub, nil), NewClient(hub, nil)

	a.dispatch([]byte(`{"event":"join_room","data":{"room":"exam-prep","username":"Asha"}}`))
	b.dispatch([]byte(`{"event":"join_room","data":{"room":"exam-prep","username":"Bilal"}}`))
	if got := recvRaw(t, a); got != `{"event":"user_joined","data":"Bilal"}` {
		t.Errorf("join announcement = %s", got)
	}

	a.dispatch([]byte(`{"event":"start_battle","data":{"room":"exam-prep"}}`))
	if env := recvFrame(t, a); env.Event != EventBattleStarted {
		t.Errorf("event = %q, want %q", env.Event, EventBattleStarted)
	}
	if env := recvFrame(t, b); env.Event != EventBattleStarted {
		t.Errorf("event = %q, want %q", env.Event, EventBattleStarted)
	}

	b.dispatch([]byte(`{"event":"player_lost_focus","data":{"room":"exam-prep","username":"Bilal"}}`))
	if env := recvFrame(t, a); env.Event != EventGameOver {
		t.Errorf("event = %q, want %q", env.Event, EventGameOver)
	}
	if env := recvFrame(t, b); env.Event != EventGameOver {
		t.Errorf("event = %q, want %q", env.Event, EventGameOver)
	}
}

func TestDispatchIgnoresMalformedFrames(t *testing.T) {
	hub := NewHub()
	a, b := NewClient(hub, nil), NewClient(hub, nil)
	hub.JoinRoom(a, "room1", "Asha")
	hub.JoinRoom(b, "room1", "Bilal")
	recvFrame(t, a)

	for _, frame := range []string{
		`not json`,
		`{"event":"join_room","data":"no-object"}`,
		`{"event":"teleport","data":{}}`,
		`{}`,
	} {
		b.dispatch([]byte(frame))
	}
	assertSilent(t, a)
	assertSilent(t, b)
}

func TestEncodeOmitsEmptyData(t *testing.T) {
	if got := string(encode(EventBattleStarted, nil)); got != `{"event":"battle_started"}` {
		t.Errorf("frame = %s", got)
	}
}

func TestForfeitOutcomePerspectives(t *testing.T) {
	var outcome ForfeitOutcome

	winner := outcome.Payload(PerspectiveWinner)
	if winner.Winner != "Opponent" || winner.Reason != "Opponent switched tabs!" {
		t.Errorf("winner payload = %+v", winner)
	}

	loser := outcome.Payload(PerspectiveLoser)
	if loser.Winner != "Opponent" || loser.Reason != "You switched tabs! Defeat." {
		t.Errorf("loser payload = %+v", loser)
	}
}
