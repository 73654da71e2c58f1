package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/pkg/utils"
)

// --- Custom Service Errors for Tasks ---
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskArchived = errors.New("archived tasks cannot be changed")
)

// --- Task DTOs ---
type CreateTaskRequest struct {
	Title          string              `json:"title" validate:"required"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID     string              `json:"assignee_id" validate:"required"`
	DueDate        string              `json:"due_date" validate:"required,datetime=2006-01-02"`
	EstimatedHours *float64            `json:"estimated_hours" validate:"omitempty,gte=0"`
	Tags           []string            `json:"tags"`
}

type UpdateTaskRequest struct {
	Title          *string              `json:"title" validate:"omitempty,min=1"`
	Description    *string              `json:"description"`
	Priority       *models.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID     *string              `json:"assignee_id" validate:"omitempty,min=1"`
	DueDate        *string              `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	EstimatedHours *float64             `json:"estimated_hours" validate:"omitempty,gte=0"`
	ActualHours    *float64             `json:"actual_hours" validate:"omitempty,gte=0"`
	Tags           []string             `json:"tags"`
}

type MoveTaskRequest struct {
	OverID string `json:"over_id" validate:"required"`
}

type AddCommentRequest struct {
	AuthorID string `json:"author_id"`
	Content  string `json:"content" validate:"required"`
}

// MoveResult reports what a drop did. Moved is false when the drop was ignored.
type MoveResult struct {
	Moved       bool         `json:"moved"`
	Task        *models.Task `json:"task,omitempty"`
	HistoryTask *models.Task `json:"history_task,omitempty"`
}

// --- TaskService Interface ---
type TaskService interface {
	CreateTask(req CreateTaskRequest) (*models.Task, error)
	GetTaskByID(id string) (*models.Task, error)
	GetTasks(status models.TaskStatus) ([]models.Task, error)
	UpdateTask(id string, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(id string) error
	MoveTask(taskID string, req MoveTaskRequest) (*MoveResult, error)
	AddComment(taskID string, req AddCommentRequest) (*models.Task, error)
	GetBoard() (*models.TaskBoard, error)
}

type taskService struct {
	store    *repositories.Store
	taskRepo repositories.TaskRepository
	teamRepo repositories.TeamRepository
	now      func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(store *repositories.Store, taskRepo repositories.TaskRepository, teamRepo repositories.TeamRepository) TaskService {
	return &taskService{store: store, taskRepo: taskRepo, teamRepo: teamRepo, now: time.Now}
}

// normalizeTags splits comma separated entries, trims them and drops empties.
func normalizeTags(raw []string) []string {
	tags := []string{}
	for _, entry := range raw {
		for _, tag := range strings.Split(entry, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func (s *taskService) checkAssignee(tx *repositories.Tx, assigneeID string) error {
	if _, err := s.teamRepo.GetMemberByID(tx, assigneeID); err != nil {
		return translateNotFound(err, ErrMemberNotFound, "checking assignee")
	}
	return nil
}

func (s *taskService) CreateTask(req CreateTaskRequest) (*models.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	task := &models.Task{
		ID:             utils.GenerateID(),
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Status:         models.TaskStatusTodo,
		Priority:       req.Priority,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Tags:           normalizeTags(req.Tags),
		Comments:       []models.TaskComment{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}

	err := s.store.Update(func(tx *repositories.Tx) error {
		if err := s.checkAssignee(tx, task.AssigneeID); err != nil {
			return err
		}
		if err := s.taskRepo.CreateTask(tx, task); err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTaskByID(id string) (*models.Task, error) {
	task, err := s.taskRepo.GetTaskByID(s.store, id)
	if err != nil {
		return nil, translateNotFound(err, ErrTaskNotFound, "getting task")
	}
	return task, nil
}

func (s *taskService) GetTasks(status models.TaskStatus) ([]models.Task, error) {
	return s.taskRepo.GetTasks(s.store, status)
}

// UpdateTask edits the descriptive fields of a task. Status only changes through MoveTask.
func (s *taskService) UpdateTask(id string, req UpdateTaskRequest) (*models.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.store.Update(func(tx *repositories.Tx) error {
		task, err := s.taskRepo.GetTaskByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrTaskNotFound, "getting task")
		}
		if task.IsArchived() {
			return ErrTaskArchived
		}

		if req.Title != nil {
			if utils.IsEmpty(*req.Title) {
				return fmt.Errorf("%w: title cannot be empty", ErrValidation)
			}
			task.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			task.Description = strings.TrimSpace(*req.Description)
		}
		if req.Priority != nil {
			task.Priority = *req.Priority
		}
		if req.AssigneeID != nil {
			if err := s.checkAssignee(tx, *req.AssigneeID); err != nil {
				return err
			}
			task.AssigneeID = *req.AssigneeID
		}
		if req.DueDate != nil {
			task.DueDate = *req.DueDate
		}
		if req.EstimatedHours != nil {
			task.EstimatedHours = req.EstimatedHours
		}
		if req.ActualHours != nil {
			task.ActualHours = req.ActualHours
		}
		if req.Tags != nil {
			task.Tags = normalizeTags(req.Tags)
		}
		task.UpdatedAt = s.now()

		if err := s.taskRepo.UpdateTask(tx, task); err != nil {
			return translateNotFound(err, ErrTaskNotFound, "updating task")
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *taskService) DeleteTask(id string) error {
	return s.store.Update(func(tx *repositories.Tx) error {
		task, err := s.taskRepo.GetTaskByID(tx, id)
		if err != nil {
			return translateNotFound(err, ErrTaskNotFound, "getting task")
		}
		if task.IsArchived() {
			return ErrTaskArchived
		}
		if err := s.taskRepo.DeleteTask(tx, id); err != nil {
			return translateNotFound(err, ErrTaskNotFound, "deleting task")
		}
		return nil
	})
}

// MoveTask resolves a drag-and-drop of taskID onto overID, which is either a column
// id or another task whose column is inherited. Drops that resolve to nothing, to the
// history column or to the task's current column are ignored. Reaching done also
// archives a copy of the task into history.
func (s *taskService) MoveTask(taskID string, req MoveTaskRequest) (*MoveResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result := &MoveResult{}
	err := s.store.Update(func(tx *repositories.Tx) error {
		task, err := s.taskRepo.GetTaskByID(tx, taskID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("getting task: %w", err)
		}
		if task.IsArchived() {
			return nil
		}

		target, ok, err := s.resolveDropTarget(tx, req.OverID)
		if err != nil || !ok || target == task.Status {
			return err
		}

		now := s.now()
		task.Status = target
		task.UpdatedAt = now
		if err := s.taskRepo.UpdateTask(tx, task); err != nil {
			return fmt.Errorf("moving task: %w", err)
		}
		result.Moved = true
		result.Task = task

		if target == models.TaskStatusDone {
			historyID := utils.UniqueID(utils.HistoryTaskID(task.ID, now), func(id string) bool {
				_, err := s.taskRepo.GetTaskByID(tx, id)
				return err == nil
			})
			archived := archiveCopy(*task, historyID, now)
			if err := s.taskRepo.CreateTask(tx, &archived); err != nil {
				return fmt.Errorf("archiving task: %w", err)
			}
			result.HistoryTask = &archived
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Moved {
		utils.LogDebug("Task moved", map[string]interface{}{"task_id": taskID, "status": result.Task.Status, "archived": result.HistoryTask != nil})
	}
	return result, nil
}

func (s *taskService) resolveDropTarget(tx *repositories.Tx, overID string) (models.TaskStatus, bool, error) {
	if models.IsBoardColumn(overID) {
		status := models.TaskStatus(overID)
		return status, status != models.TaskStatusHistory, nil
	}
	over, err := s.taskRepo.GetTaskByID(tx, overID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting drop target: %w", err)
	}
	if over.IsArchived() {
		return "", false, nil
	}
	return over.Status, true, nil
}

func archiveCopy(task models.Task, historyID string, now time.Time) models.Task {
	archived := task.Clone()
	archived.ID = historyID
	archived.Status = models.TaskStatusHistory
	archived.UpdatedAt = now
	archived.Comments = append(archived.Comments, models.TaskComment{
		ID:        newCommentID(archived.Comments, now),
		TaskID:    archived.ID,
		AuthorID:  task.AssigneeID,
		Content:   "Task completed and archived on " + now.Format("1/2/2006"),
		CreatedAt: now,
	})
	return archived
}

// newCommentID returns a comment id that no comment in existing already uses.
func newCommentID(existing []models.TaskComment, now time.Time) string {
	return utils.UniqueID(utils.CommentID(now), func(id string) bool {
		for _, c := range existing {
			if c.ID == id {
				return true
			}
		}
		return false
	})
}

func (s *taskService) AddComment(taskID string, req AddCommentRequest) (*models.Task, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.store.Update(func(tx *repositories.Tx) error {
		task, err := s.taskRepo.GetTaskByID(tx, taskID)
		if err != nil {
			return translateNotFound(err, ErrTaskNotFound, "getting task")
		}
		if task.IsArchived() {
			return ErrTaskArchived
		}
		authorID := strings.TrimSpace(req.AuthorID)
		if authorID == "" {
			return fmt.Errorf("%w: author_id is required", ErrValidation)
		}
		if _, err := s.teamRepo.GetMemberByID(tx, authorID); err != nil {
			return translateNotFound(err, ErrMemberNotFound, "checking comment author")
		}

		now := s.now()
		task.Comments = append(task.Comments, models.TaskComment{
			ID:        newCommentID(task.Comments, now),
			TaskID:    task.ID,
			AuthorID:  authorID,
			Content:   strings.TrimSpace(req.Content),
			CreatedAt: now,
		})
		task.UpdatedAt = now
		if err := s.taskRepo.UpdateTask(tx, task); err != nil {
			return translateNotFound(err, ErrTaskNotFound, "updating task")
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetBoard groups tasks by column. History is newest first and grouped by calendar day.
func (s *taskService) GetBoard() (*models.TaskBoard, error) {
	tasks, err := s.taskRepo.GetTasks(s.store, "")
	if err != nil {
		return nil, err
	}
	return BuildBoard(tasks), nil
}

// BuildBoard arranges tasks into board columns.
func BuildBoard(tasks []models.Task) *models.TaskBoard {
	board := &models.TaskBoard{
		Todo:       []models.Task{},
		InProgress: []models.Task{},
		Done:       []models.Task{},
		History:    []models.HistoryGroup{},
	}
	var history []models.Task
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusTodo:
			board.Todo = append(board.Todo, t)
		case models.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, t)
		case models.TaskStatusDone:
			board.Done = append(board.Done, t)
		case models.TaskStatusHistory:
			history = append(history, t)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].UpdatedAt.After(history[j].UpdatedAt)
	})
	for _, t := range history {
		date := t.UpdatedAt.Format(time.DateOnly)
		if n := len(board.History); n > 0 && board.History[n-1].Date == date {
			board.History[n-1].Tasks = append(board.History[n-1].Tasks, t)
			continue
		}
		board.History = append(board.History, models.HistoryGroup{Date: date, Tasks: []models.Task{t}})
	}
	return board
}
