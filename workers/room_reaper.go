// workers/room_reaper.go
package workers

import (
	"log"
	"time"

	"study-quest-system/battle"

	"github.com/go-co-op/gocron/v2"
)

// RoomReaper periodically evicts abandoned battle rooms. Rooms have no
// explicit teardown, so without this a lobby nobody started would live
// forever.
type RoomReaper struct {
	hub      *battle.Hub
	interval time.Duration
	maxIdle  time.Duration
}

func NewRoomReaper(hub *battle.Hub) *RoomReaper {
	return &RoomReaper{
		hub:      hub,
		interval: 1 * time.Minute,
		maxIdle:  30 * time.Minute,
	}
}

func (w *RoomReaper) Start() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if n := w.hub.ReapIdleRooms(w.maxIdle); n > 0 {
				log.Printf("[RoomReaper] Removed %d abandoned rooms", n)
			}
		}),
	)
}
