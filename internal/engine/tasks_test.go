package engine

import "testing"

func TestTaskListAdd(t *testing.T) {
	tl := NewTaskList()
	task := tl.Add("write report", 3)

	if task.ID == "" {
		t.Fatal("task should get an ID")
	}
	if task.Text != "write report" || task.TotalPomodoros != 3 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.PomodorosCompleted != 0 || task.IsCompleted {
		t.Fatalf("new task should start fresh: %+v", task)
	}
	if len(tl.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tl.Tasks))
	}

	// IDs are unique.
	other := tl.Add("second", 1)
	if other.ID == task.ID {
		t.Fatal("task IDs must be unique")
	}
}

func TestTaskListAddClampsPomodoros(t *testing.T) {
	tl := NewTaskList()
	if task := tl.Add("x", 0); task.TotalPomodoros != 1 {
		t.Fatalf("expected estimate clamped to 1, got %d", task.TotalPomodoros)
	}
	if task := tl.Add("y", -5); task.TotalPomodoros != 1 {
		t.Fatalf("expected estimate clamped to 1, got %d", task.TotalPomodoros)
	}
}

func TestTaskListGet(t *testing.T) {
	tl := NewTaskList()
	task := tl.Add("a", 2)

	got := tl.Get(task.ID)
	if got == nil || got.Text != "a" {
		t.Fatalf("Get returned %+v", got)
	}
	if tl.Get("missing") != nil {
		t.Fatal("Get of unknown ID should be nil")
	}

	// Get returns a live pointer into the list.
	got.Text = "b"
	if tl.Tasks[0].Text != "b" {
		t.Fatal("mutation through Get should stick")
	}
}

func TestTaskListUpdate(t *testing.T) {
	tl := NewTaskList()
	task := tl.Add("draft", 2)

	if !tl.Update(task.ID, "final", 4) {
		t.Fatal("update should succeed")
	}
	got := tl.Get(task.ID)
	if got.Text != "final" || got.TotalPomodoros != 4 {
		t.Fatalf("update did not apply: %+v", got)
	}

	// A non-positive estimate leaves the old one in place.
	tl.Update(task.ID, "final", 0)
	if got.TotalPomodoros != 4 {
		t.Fatalf("estimate should be untouched, got %d", got.TotalPomodoros)
	}

	if tl.Update("missing", "x", 1) {
		t.Fatal("update of unknown ID should fail")
	}
}

func TestTaskListDelete(t *testing.T) {
	tl := NewTaskList()
	a := tl.Add("a", 1)
	b := tl.Add("b", 1)
	c := tl.Add("c", 1)

	if !tl.Delete(b.ID) {
		t.Fatal("delete should succeed")
	}
	if len(tl.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tl.Tasks))
	}
	if tl.Tasks[0].ID != a.ID || tl.Tasks[1].ID != c.ID {
		t.Fatal("delete should preserve order of the rest")
	}
	if tl.Delete("missing") {
		t.Fatal("delete of unknown ID should fail")
	}
}

func TestTaskListIncrementPomodoro(t *testing.T) {
	tl := NewTaskList()
	task := tl.Add("a", 2)

	for i := 0; i < 3; i++ {
		tl.IncrementPomodoro(task.ID)
	}
	// No cap at the estimate.
	if got := tl.Get(task.ID); got.PomodorosCompleted != 3 {
		t.Fatalf("expected 3 completed, got %d", got.PomodorosCompleted)
	}

	tl.IncrementPomodoro("missing") // no-op
}

func TestTaskListToggleComplete(t *testing.T) {
	tl := NewTaskList()
	task := tl.Add("a", 1)

	tl.ToggleComplete(task.ID)
	if !tl.Get(task.ID).IsCompleted {
		t.Fatal("task should be complete")
	}
	tl.ToggleComplete(task.ID)
	if tl.Get(task.ID).IsCompleted {
		t.Fatal("toggle should flip back")
	}
}

func TestTaskListAddFromTemplate(t *testing.T) {
	tl := NewTaskList()
	var tpl TaskTemplate
	for _, cand := range TaskTemplates() {
		if cand.ID == "study-session" {
			tpl = cand
		}
	}
	if tpl.ID == "" {
		t.Fatal("study-session template missing")
	}

	added := tl.AddFromTemplate(tpl)
	if len(added) != len(tpl.Tasks) {
		t.Fatalf("expected %d tasks, got %d", len(tpl.Tasks), len(added))
	}
	for i, task := range added {
		if task.Text != tpl.Tasks[i] {
			t.Fatalf("task %d: got %q, want %q", i, task.Text, tpl.Tasks[i])
		}
		if task.TotalPomodoros != tpl.TotalPomodoros {
			t.Fatalf("task %d: estimate %d, want %d", i, task.TotalPomodoros, tpl.TotalPomodoros)
		}
	}
	if len(tl.Tasks) != len(tpl.Tasks) {
		t.Fatalf("templates should append to the list, got %d", len(tl.Tasks))
	}
}
