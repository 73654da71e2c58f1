package handlers

import (
	"net/http"
	"strings"

	"warehouse_backend/internal/middleware"
	"warehouse_backend/internal/models"
	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskHandler holds the task service.
type TaskHandler struct {
	taskService services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(ts services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: ts}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req services.CreateTaskRequest
	if !bindJSON(c, &req, "CreateTask") {
		return
	}
	task, err := h.taskService.CreateTask(req)
	if err != nil {
		respondServiceError(c, err, "CreateTask: Error from taskService.CreateTask", "Failed to create task.")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTasks lists tasks, optionally filtered with ?status=.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.taskService.GetTasks(models.TaskStatus(c.Query("status")))
	if err != nil {
		respondServiceError(c, err, "GetTasks: Error from taskService.GetTasks", "Failed to fetch tasks.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tasks, "total": len(tasks)})
}

func (h *TaskHandler) GetBoard(c *gin.Context) {
	board, err := h.taskService.GetBoard()
	if err != nil {
		respondServiceError(c, err, "GetBoard: Error from taskService.GetBoard", "Failed to fetch task board.")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskService.GetTaskByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetTaskByID: Error from taskService.GetTaskByID for ID "+c.Param("id"), "Failed to fetch task.")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req services.UpdateTaskRequest
	if !bindJSON(c, &req, "UpdateTask") {
		return
	}
	task, err := h.taskService.UpdateTask(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateTask: Error from taskService.UpdateTask for ID "+c.Param("id"), "Failed to update task.")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteTask: Error from taskService.DeleteTask for ID "+c.Param("id"), "Failed to delete task.")
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveTask handles a board drop. Ignored drops answer 200 with moved=false.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req services.MoveTaskRequest
	if !bindJSON(c, &req, "MoveTask") {
		return
	}
	result, err := h.taskService.MoveTask(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "MoveTask: Error from taskService.MoveTask for ID "+c.Param("id"), "Failed to move task.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddComment appends a comment. The author defaults to the logged-in member.
func (h *TaskHandler) AddComment(c *gin.Context) {
	var req services.AddCommentRequest
	if !bindJSON(c, &req, "AddComment") {
		return
	}
	if strings.TrimSpace(req.AuthorID) == "" {
		req.AuthorID = c.GetString(middleware.ContextMemberID)
	}
	task, err := h.taskService.AddComment(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "AddComment: Error from taskService.AddComment for ID "+c.Param("id"), "Failed to add comment.")
		return
	}
	c.JSON(http.StatusCreated, task)
}
