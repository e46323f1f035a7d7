package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/myvoca/internal/config"
	"github.com/mrlokans/myvoca/internal/tasks"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue     TaskQueue
	scheduler config.Scheduler
	audit     config.Audit
}

func NewTasksController(queue TaskQueue, scheduler config.Scheduler, audit config.Audit) *TasksController {
	return &TasksController{queue: queue, scheduler: scheduler, audit: audit}
}

// TaskTypeInfo describes a task that can be triggered manually.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

var taskTypes = []TaskTypeInfo{
	{Type: "reconcile_word_counts", Description: "Recompute cached vocab word counts"},
	{Type: "enrich_pending_words", Description: "Fetch dictionary definitions for words without any"},
	{Type: "cleanup_orphan_definitions", Description: "Delete definitions no word links to"},
	{Type: "cleanup_audit_events", Description: "Delete audit events past the retention window"},
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	respondOK(c, taskTypes)
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	respondOK(c, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:id/run where :id is a task type.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("id")

	var task backlite.Task
	switch taskType {
	case "reconcile_word_counts":
		task = tasks.ReconcileWordCountsTask{}
	case "enrich_pending_words":
		task = tasks.EnrichPendingWordsTask{Limit: tc.scheduler.EnrichBatchSize}
	case "cleanup_orphan_definitions":
		task = tasks.CleanupOrphanDefinitionsTask{}
	case "cleanup_audit_events":
		task = tasks.CleanupAuditEventsTask{RetentionDays: tc.audit.RetentionDays}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	taskID, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	respondAccepted(c, "task enqueued", gin.H{"taskId": taskID, "type": taskType})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
