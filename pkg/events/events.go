// Package events defines event types and structures for execution lifecycle notifications.
package events

import (
	"time"

	"github.com/dukex/sonda/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every execution lifecycle event.
const Topic = "sonda.executions"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Execution lifecycle events.
	ExecutionStartedEvent         EventType = "execution.started"
	ExecutionCompletedEvent       EventType = "execution.completed"
	ExecutionEarlyTerminatedEvent EventType = "execution.early_terminated"

	// Step lifecycle events.
	StepStartedEvent  EventType = "step.started"
	StepFinishedEvent EventType = "step.finished"
	StepFailedEvent   EventType = "step.failed"
	StepSkippedEvent  EventType = "step.skipped"
)

type BaseEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	ExecutionID string         `json:"execution_id"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type ExecutionStarted struct {
	BaseEvent

	Question   string            `json:"question"`
	Complexity models.Complexity `json:"complexity"`
	StepCount  int               `json:"step_count"`
}

func (e ExecutionStarted) GetType() EventType {
	return ExecutionStartedEvent
}

type ExecutionCompleted struct {
	BaseEvent

	SuccessRate     float64 `json:"success_rate"`
	DurationSeconds float64 `json:"duration_seconds"`
	StepsExecuted   int     `json:"steps_executed"`
	EarlyTerminated bool    `json:"early_terminated"`
}

func (e ExecutionCompleted) GetType() EventType {
	return ExecutionCompletedEvent
}

// ExecutionEarlyTerminated is published the moment the stop heuristic
// fires, before the final answer is assembled.
type ExecutionEarlyTerminated struct {
	BaseEvent

	AfterStepID    int `json:"after_step_id"`
	OutputLength   int `json:"output_length"`
	RemainingSteps int `json:"remaining_steps"`
}

func (e ExecutionEarlyTerminated) GetType() EventType {
	return ExecutionEarlyTerminatedEvent
}

type StepStarted struct {
	BaseEvent

	StepID   int             `json:"step_id"`
	StepType models.StepType `json:"step_type"`
}

func (e StepStarted) GetType() EventType {
	return StepStartedEvent
}

type StepFinished struct {
	BaseEvent

	StepID          int             `json:"step_id"`
	StepType        models.StepType `json:"step_type"`
	OutputLength    int             `json:"output_length"`
	DurationSeconds float64         `json:"duration_seconds"`
}

func (e StepFinished) GetType() EventType {
	return StepFinishedEvent
}

type StepFailed struct {
	BaseEvent

	StepID          int             `json:"step_id"`
	StepType        models.StepType `json:"step_type"`
	Error           string          `json:"error"`
	DurationSeconds float64         `json:"duration_seconds"`
}

func (e StepFailed) GetType() EventType {
	return StepFailedEvent
}

type StepSkipped struct {
	BaseEvent

	StepID   int             `json:"step_id"`
	StepType models.StepType `json:"step_type"`
	Reason   string          `json:"reason"`
}

func (e StepSkipped) GetType() EventType {
	return StepSkippedEvent
}

func NewBaseEvent(eventType EventType, executionID string) BaseEvent {
	return BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		ExecutionID: executionID,
		Metadata:    make(map[string]any),
	}
}
