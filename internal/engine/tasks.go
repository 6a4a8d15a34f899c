package engine

import "github.com/google/uuid"

// Task is one unit of planned work, measured in pomodoros.
type Task struct {
	ID                 string `json:"id"`
	Text               string `json:"text"`
	TotalPomodoros     int    `json:"totalPomodoros"`
	PomodorosCompleted int    `json:"pomodorosCompleted"`
	IsCompleted        bool   `json:"isCompleted"`
}

// TaskList owns the ordered task collection. The session references tasks
// by ID and mutates them only through this container.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

func NewTaskList() *TaskList {
	return &TaskList{}
}

func (tl *TaskList) Add(text string, totalPomodoros int) Task {
	if totalPomodoros < 1 {
		totalPomodoros = 1
	}
	task := Task{
		ID:             uuid.NewString(),
		Text:           text,
		TotalPomodoros: totalPomodoros,
	}
	tl.Tasks = append(tl.Tasks, task)
	return task
}

func (tl *TaskList) Get(id string) *Task {
	for i := range tl.Tasks {
		if tl.Tasks[i].ID == id {
			return &tl.Tasks[i]
		}
	}
	return nil
}

func (tl *TaskList) Update(id, text string, totalPomodoros int) bool {
	t := tl.Get(id)
	if t == nil {
		return false
	}
	t.Text = text
	if totalPomodoros >= 1 {
		t.TotalPomodoros = totalPomodoros
	}
	return true
}

func (tl *TaskList) Delete(id string) bool {
	for i := range tl.Tasks {
		if tl.Tasks[i].ID == id {
			tl.Tasks = append(tl.Tasks[:i], tl.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// IncrementPomodoro bumps the completed count for a finished focus
// session. The count is not capped at TotalPomodoros.
func (tl *TaskList) IncrementPomodoro(id string) {
	if t := tl.Get(id); t != nil {
		t.PomodorosCompleted++
	}
}

func (tl *TaskList) ToggleComplete(id string) {
	if t := tl.Get(id); t != nil {
		t.IsCompleted = !t.IsCompleted
	}
}

// AddFromTemplate expands a task template into individual tasks.
func (tl *TaskList) AddFromTemplate(tpl TaskTemplate) []Task {
	added := make([]Task, 0, len(tpl.Tasks))
	for _, text := range tpl.Tasks {
		added = append(added, tl.Add(text, tpl.TotalPomodoros))
	}
	return added
}
