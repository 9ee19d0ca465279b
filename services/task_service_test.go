package services

import (
	"testing"
	"time"
)

func TestToggleFlipsCompletion(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	task, err := tasks.Create("u1", "revise algebra")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	toggled, err := tasks.Toggle(task.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !toggled.IsCompleted {
		t.Error("first toggle should complete the task")
	}

	toggled, err = tasks.Toggle(task.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if toggled.IsCompleted {
		t.Error("second toggle should un-complete the task")
	}
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	first, _ := tasks.Create("u1", "older")
	// Force distinct creation times; sqlite timestamps are wall-clock.
	db.Model(first).Update("created_at", time.Now().Add(-time.Hour))
	tasks.Create("u1", "newer")
	tasks.Create("u2", "someone else's")

	list, err := tasks.ListByUser("u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Title != "newer" || list[1].Title != "older" {
		t.Errorf("order = [%s, %s], want [newer, older]", list[0].Title, list[1].Title)
	}
}

func TestHistoryGroupsCompletedTasksByDay(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	a, _ := tasks.Create("u1", "a")
	b, _ := tasks.Create("u1", "b")
	tasks.Create("u1", "never finished")
	tasks.Toggle(a.ID)
	tasks.Toggle(b.ID)

	stats, err := tasks.History("u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("buckets = %d, want 1 (both completed today)", len(stats))
	}
	if stats[0].Count != 2 {
		t.Errorf("count = %d, want 2", stats[0].Count)
	}
	if stats[0].Date != time.Now().Format("2006-01-02") {
		t.Errorf("date = %s, want today", stats[0].Date)
	}
}

func TestByDateWindow(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	task, _ := tasks.Create("u1", "today's work")

	today, err := tasks.ByDate("u1", time.Now())
	if err != nil {
		t.Fatalf("ByDate: %v", err)
	}
	if len(today) != 1 || today[0].ID != task.ID {
		t.Errorf("today = %d tasks, want the one just created", len(today))
	}

	yesterday, err := tasks.ByDate("u1", time.Now().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("ByDate: %v", err)
	}
	if len(yesterday) != 0 {
		t.Errorf("yesterday = %d tasks, want 0", len(yesterday))
	}
}
