package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"warehouse_backend/internal/models"
)

func createTask(t *testing.T, svc *taskService, title, assigneeID string) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(CreateTaskRequest{Title: title, AssigneeID: assigneeID, DueDate: "2024-02-01", Tags: []string{"audit, zone-1", " "}})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return task
}

func move(t *testing.T, svc *taskService, taskID, overID string) *MoveResult {
	t.Helper()
	res, err := svc.MoveTask(taskID, MoveTaskRequest{OverID: overID})
	if err != nil {
		t.Fatalf("MoveTask(%s -> %s): %v", taskID, overID, err)
	}
	return res
}

func TestCreateTaskDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Sarah Johnson")

	task := createTask(t, svc, "Inventory Audit - Zone 1", member.ID)
	if task.Status != models.TaskStatusTodo || task.Priority != models.TaskPriorityMedium {
		t.Errorf("defaults = %s/%s", task.Status, task.Priority)
	}
	if !reflect.DeepEqual(task.Tags, []string{"audit", "zone-1"}) {
		t.Errorf("tags = %v", task.Tags)
	}

	if _, err := svc.CreateTask(CreateTaskRequest{Title: "x", AssigneeID: "ghost", DueDate: "2024-02-01"}); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("unknown assignee = %v, want ErrMemberNotFound", err)
	}
}

func TestMoveTaskToDoneArchivesCopy(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Sarah Johnson")
	task := createTask(t, svc, "Inventory Audit - Zone 1", member.ID)

	if res := move(t, svc, task.ID, string(models.TaskStatusInProgress)); !res.Moved || res.HistoryTask != nil {
		t.Fatalf("move to in-progress = %+v", res)
	}
	if _, err := svc.AddComment(task.ID, AddCommentRequest{AuthorID: member.ID, Content: "Counting shelf 3"}); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	res := move(t, svc, task.ID, string(models.TaskStatusDone))
	if !res.Moved || res.Task.Status != models.TaskStatusDone {
		t.Fatalf("move to done = %+v", res)
	}
	archived := res.HistoryTask
	if archived == nil {
		t.Fatal("no history copy created")
	}
	if want := task.ID + "-history-1705746600000"; archived.ID != want {
		t.Errorf("history id = %s, want %s", archived.ID, want)
	}
	if archived.Status != models.TaskStatusHistory {
		t.Errorf("history status = %s", archived.Status)
	}
	if len(archived.Comments) != 2 {
		t.Fatalf("history comments = %d, want 2", len(archived.Comments))
	}
	last := archived.Comments[1]
	if last.Content != "Task completed and archived on 1/20/2024" || last.AuthorID != member.ID {
		t.Errorf("archive comment = %+v", last)
	}
	if archived.Comments[0].ID == last.ID {
		t.Errorf("archive comment reuses id %s", last.ID)
	}

	tasks, _ := svc.GetTasks("")
	if len(tasks) != 2 {
		t.Fatalf("task count = %d, want original plus history copy", len(tasks))
	}
	done, _ := svc.GetTaskByID(task.ID)
	if len(done.Comments) != 1 {
		t.Errorf("original task comments = %d, want 1", len(done.Comments))
	}
}

func TestRepeatedCompletionInSameMillisecond(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Sarah Johnson")
	task := createTask(t, svc, "Cycle count", member.ID)

	first := move(t, svc, task.ID, string(models.TaskStatusDone))
	move(t, svc, task.ID, string(models.TaskStatusTodo))
	second := move(t, svc, task.ID, string(models.TaskStatusDone))
	if first.HistoryTask == nil || second.HistoryTask == nil {
		t.Fatalf("history copies = %+v / %+v", first.HistoryTask, second.HistoryTask)
	}
	if first.HistoryTask.ID == second.HistoryTask.ID {
		t.Fatalf("history copies share id %s", first.HistoryTask.ID)
	}
	if want := task.ID + "-history-1705746600000-2"; second.HistoryTask.ID != want {
		t.Errorf("second history id = %s, want %s", second.HistoryTask.ID, want)
	}

	history, err := svc.GetTasks(models.TaskStatusHistory)
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history tasks = %d, want 2", len(history))
	}
}

func TestCommentsInSameMillisecondGetDistinctIDs(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Mike Chen")
	task := createTask(t, svc, "Label aisle B", member.ID)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.AddComment(task.ID, AddCommentRequest{AuthorID: member.ID, Content: content}); err != nil {
			t.Fatalf("AddComment(%s): %v", content, err)
		}
	}
	got, err := svc.GetTaskByID(task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	want := []string{"comment-1705746600000", "comment-1705746600000-2", "comment-1705746600000-3"}
	var ids []string
	for _, c := range got.Comments {
		ids = append(ids, c.ID)
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("comment ids = %v, want %v", ids, want)
	}
}

func TestMoveTaskIgnoredDrops(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Mike Davis")
	task := createTask(t, svc, "Restock Office Chairs", member.ID)
	other := createTask(t, svc, "Label Aisle A", member.ID)
	move(t, svc, other.ID, string(models.TaskStatusDone))
	tasks, _ := svc.GetTasks(models.TaskStatusHistory)
	if len(tasks) != 1 {
		t.Fatalf("history tasks = %d, want 1", len(tasks))
	}
	historyID := tasks[0].ID

	tests := []struct {
		name   string
		taskID string
		overID string
	}{
		{"onto history column", task.ID, string(models.TaskStatusHistory)},
		{"onto own column", task.ID, string(models.TaskStatusTodo)},
		{"onto unknown target", task.ID, "nowhere"},
		{"onto archived task", task.ID, historyID},
		{"unknown task", "ghost", string(models.TaskStatusDone)},
		{"archived task", historyID, string(models.TaskStatusTodo)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := move(t, svc, tt.taskID, tt.overID); res.Moved {
				t.Fatalf("drop was applied: %+v", res)
			}
		})
	}
	if all, _ := svc.GetTasks(""); len(all) != 3 {
		t.Errorf("task count = %d, want 3", len(all))
	}
}

func TestMoveTaskOntoAnotherTask(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Mike Davis")
	task := createTask(t, svc, "Restock Office Chairs", member.ID)
	other := createTask(t, svc, "Inventory Audit", member.ID)
	move(t, svc, other.ID, string(models.TaskStatusInProgress))

	res := move(t, svc, task.ID, other.ID)
	if !res.Moved || res.Task.Status != models.TaskStatusInProgress {
		t.Fatalf("drop onto task = %+v", res)
	}
}

func TestArchivedTasksAreReadOnly(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	member := env.addMember(t, "Mike Davis")
	task := createTask(t, svc, "Restock", member.ID)
	res := move(t, svc, task.ID, string(models.TaskStatusDone))

	title := "renamed"
	if _, err := svc.UpdateTask(res.HistoryTask.ID, UpdateTaskRequest{Title: &title}); !errors.Is(err, ErrTaskArchived) {
		t.Errorf("UpdateTask on history = %v", err)
	}
	if err := svc.DeleteTask(res.HistoryTask.ID); !errors.Is(err, ErrTaskArchived) {
		t.Errorf("DeleteTask on history = %v", err)
	}
	if _, err := svc.AddComment(res.HistoryTask.ID, AddCommentRequest{AuthorID: member.ID, Content: "x"}); !errors.Is(err, ErrTaskArchived) {
		t.Errorf("AddComment on history = %v", err)
	}
}

func TestBuildBoard(t *testing.T) {
	day1 := time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 19, 9, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "a", Status: models.TaskStatusTodo},
		{ID: "h1", Status: models.TaskStatusHistory, UpdatedAt: day1},
		{ID: "b", Status: models.TaskStatusInProgress},
		{ID: "h2", Status: models.TaskStatusHistory, UpdatedAt: day2},
		{ID: "h3", Status: models.TaskStatusHistory, UpdatedAt: day2.Add(time.Hour)},
		{ID: "c", Status: models.TaskStatusDone},
	}
	board := BuildBoard(tasks)
	if len(board.Todo) != 1 || len(board.InProgress) != 1 || len(board.Done) != 1 {
		t.Fatalf("columns = %d/%d/%d", len(board.Todo), len(board.InProgress), len(board.Done))
	}
	if len(board.History) != 2 {
		t.Fatalf("history groups = %d, want 2", len(board.History))
	}
	if board.History[0].Date != "2024-01-19" || board.History[1].Date != "2024-01-18" {
		t.Errorf("group dates = %s, %s", board.History[0].Date, board.History[1].Date)
	}
	if ids := []string{board.History[0].Tasks[0].ID, board.History[0].Tasks[1].ID}; !reflect.DeepEqual(ids, []string{"h3", "h2"}) {
		t.Errorf("newest day order = %v", ids)
	}
}
