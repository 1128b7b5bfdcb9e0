package ports

import (
	"context"

	"datacraft/domain/core"
)

// TaskType enumerates the jobs the system dispatches. The cleaning operation
// names double as the fixed vocabulary the plan generator may use.
type TaskType string

const (
	TaskDiagnosis  TaskType = "diagnosis"
	TaskStatistics TaskType = "statistics"

	TaskDropDuplicateRows TaskType = "drop_duplicate_rows"
	TaskDropNARows        TaskType = "drop_na_rows"
	TaskImputeMedian      TaskType = "impute_median"
	TaskImputeMean        TaskType = "impute_mean"
	TaskImputeMode        TaskType = "impute_mode"
	TaskImputeConstant    TaskType = "impute_constant"
	TaskStandardScale     TaskType = "standard_scale"
	TaskMinMaxScale       TaskType = "minmax_scale"
	TaskDeleteColumn      TaskType = "delete_column"
)

// IsCleaning reports whether the task mutates the dataset file.
func (t TaskType) IsCleaning() bool {
	return t != TaskDiagnosis && t != TaskStatistics && t != ""
}

// Task is one unit of work routed to a worker.
type Task struct {
	DatasetName string                 `json:"dataset_name"`
	ColumnName  string                 `json:"column_name"`
	Type        TaskType               `json:"task_type"`
	Params      map[string]interface{} `json:"task_params,omitempty"`
}

// Job states mirror the broker semantics API clients poll for.
const (
	JobPending = "PENDING"
	JobSuccess = "SUCCESS"
	JobFailure = "FAILURE"
)

// JobResult is the polled status of a submitted task.
type JobResult struct {
	Status string      `json:"status"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// TaskQueue dispatches tasks to an asynchronous worker. The real broker (and
// its at-most-once/retry semantics) is outside this module; adapters/memory
// ships an in-process implementation for tests and single-node runs.
type TaskQueue interface {
	// Submit enqueues a task and returns its job ID.
	Submit(ctx context.Context, task Task) (core.JobID, error)

	// Status reports the current state of a job, or core.ErrJobNotFound.
	Status(ctx context.Context, id core.JobID) (JobResult, error)
}
