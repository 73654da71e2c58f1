package repositories

import (
	"fmt"

	"warehouse_backend/internal/models"
)

// TaskRepository defines the interface for task storage.
type TaskRepository interface {
	CreateTask(executor Executor, task *models.Task) error
	GetTaskByID(executor Executor, id string) (*models.Task, error)
	GetTasks(executor Executor, status models.TaskStatus) ([]models.Task, error)
	UpdateTask(executor Executor, task *models.Task) error
	DeleteTask(executor Executor, id string) error
}

type taskRepository struct{}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

// CreateTask appends a task.
func (r *taskRepository) CreateTask(executor Executor, task *models.Task) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.tasks {
			if existing.ID == task.ID {
				return fmt.Errorf("%w: task id %s", ErrDuplicateKey, task.ID)
			}
		}
		st.tasks = append(st.tasks, task.Clone())
		return nil
	})
}

// GetTaskByID retrieves a copy of a task by its id.
func (r *taskRepository) GetTaskByID(executor Executor, id string) (*models.Task, error) {
	var found *models.Task
	err := executor.read(func(st *memoryState) error {
		for _, t := range st.tasks {
			if t.ID == id {
				c := t.Clone()
				found = &c
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetTasks lists tasks in insertion order, optionally restricted to one status.
func (r *taskRepository) GetTasks(executor Executor, status models.TaskStatus) ([]models.Task, error) {
	tasks := []models.Task{}
	err := executor.read(func(st *memoryState) error {
		for _, t := range st.tasks {
			if status != "" && t.Status != status {
				continue
			}
			tasks = append(tasks, t.Clone())
		}
		return nil
	})
	return tasks, err
}

// UpdateTask replaces the stored task with the same id.
func (r *taskRepository) UpdateTask(executor Executor, task *models.Task) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.tasks {
			if st.tasks[i].ID == task.ID {
				st.tasks[i] = task.Clone()
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteTask removes a task.
func (r *taskRepository) DeleteTask(executor Executor, id string) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.tasks {
			if st.tasks[i].ID == id {
				st.tasks = append(st.tasks[:i], st.tasks[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
