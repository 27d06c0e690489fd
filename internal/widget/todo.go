package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Task is one to-do entry.
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ErrEmptyTask is returned when adding a blank task.
var ErrEmptyTask = errors.New("please enter a task")

// ErrNoSuchTask is returned for an out-of-range task index.
var ErrNoSuchTask = errors.New("no such task")

// TodoList is an ordered task list persisted as JSON to a file — the
// stand-in for the page's localStorage. The zero value is not usable;
// call NewTodoList.
type TodoList struct {
	mu    sync.Mutex
	path  string
	tasks []Task
}

// NewTodoList loads the task list persisted at path. A missing file is
// an empty list, not an error.
func NewTodoList(path string) (*TodoList, error) {
	l := &TodoList{path: path, tasks: []Task{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if err := json.Unmarshal(data, &l.tasks); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return l, nil
}

// Add appends a task. Blank (after trimming) input is rejected.
func (l *TodoList) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTask
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = append(l.tasks, Task{Text: text})
	return l.save()
}

// Toggle flips the completed flag of the task at index i and reports
// its new state.
func (l *TodoList) Toggle(i int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.tasks) {
		return false, ErrNoSuchTask
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return l.tasks[i].Completed, l.save()
}

// Remove deletes the task at index i.
func (l *TodoList) Remove(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.tasks) {
		return ErrNoSuchTask
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return l.save()
}

// ClearAll removes every task.
func (l *TodoList) ClearAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = []Task{}
	return l.save()
}

// ClearCompleted removes every completed task, keeping order.
func (l *TodoList) ClearCompleted() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	return l.save()
}

// Filtered returns the tasks whose text contains filter, compared
// case-insensitively. An empty filter returns every task. The returned
// slice is a copy; mutating it does not touch the list.
func (l *TodoList) Filtered(filter string) []Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	filter = strings.ToLower(filter)
	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Text), filter) {
			out = append(out, t)
		}
	}
	return out
}

// Counter reports the total and completed task counts.
func (l *TodoList) Counter() (total, completed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tasks {
		if t.Completed {
			completed++
		}
	}
	return len(l.tasks), completed
}

// save persists the list. Caller must hold l.mu.
func (l *TodoList) save() error {
	data, err := json.Marshal(l.tasks)
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
