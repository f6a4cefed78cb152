package provisioning

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/imamik/parcelup/internal/parcel"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during an upgrade.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports transfer progress while waiting for a stage
	Progress(phase string, current, total int64)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured upgrade event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "resolve-cluster", "upgrade")
	Message   string            // Human-readable message
	Resource  string            // Parcel or cluster the event is about
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of upgrade event.
type EventType string

const (
	// EventPhaseStarted indicates a phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventStageRequested indicates a stage action was sent to the control plane.
	EventStageRequested EventType = "stage.requested"
	// EventStageReached indicates the parcel reached the awaited stage.
	EventStageReached EventType = "stage.reached"
	// EventStageSkipped indicates a dry run left a stage action unsent.
	EventStageSkipped EventType = "stage.skipped"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
	// EventValidationError indicates a validation error.
	EventValidationError EventType = "validation.error"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// IsFailure reports whether the event describes a failure.
func (t EventType) IsFailure() bool {
	return t == EventPhaseFailed || t == EventValidationError
}

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	log.Print(o.formatEvent(o.withContext(event)))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int64) {
	log.Printf("[%s] progress: %d / %d", phase, current, total)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := maps.Clone(o.contextFields)
	if newFields == nil {
		newFields = make(map[string]string)
	}
	maps.Copy(newFields, fields)

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// withContext stamps the event and merges context fields without overriding
// fields set on the event itself.
func (o *ConsoleObserver) withContext(event Event) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}
	return event
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	parts := []string{string(event.Type)}

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, event.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogStageRequested logs that the action moving p towards target was sent.
func LogStageRequested(observer Observer, phase string, p parcel.Parcel, target parcel.Stage) {
	observer.Event(Event{
		Type:     EventStageRequested,
		Phase:    phase,
		Resource: p.ID(),
		Message:  fmt.Sprintf("requested %s", target),
		Fields: map[string]string{
			"from": p.Stage.String(),
		},
	})
}

// LogStageReached logs that p reached target after polls polls.
func LogStageReached(observer Observer, phase string, p parcel.Parcel, target parcel.Stage, polls int, duration time.Duration) {
	observer.Event(Event{
		Type:     EventStageReached,
		Phase:    phase,
		Resource: p.ID(),
		Message:  fmt.Sprintf("reached %s in %v", target, duration.Round(time.Millisecond)),
		Fields: map[string]string{
			"polls": fmt.Sprintf("%d", polls),
		},
	})
}

// LogStageSkipped logs an action a dry run did not send.
func LogStageSkipped(observer Observer, phase string, p parcel.Parcel, target parcel.Stage) {
	observer.Event(Event{
		Type:     EventStageSkipped,
		Phase:    phase,
		Resource: p.ID(),
		Message:  fmt.Sprintf("[DRY RUN] would move %s to %s", p.Stage, target),
	})
}

// LogValidation logs a validation finding with its severity.
func LogValidation(observer Observer, phase string, ve ValidationError) {
	t := EventValidationWarning
	if ve.IsError() {
		t = EventValidationError
	}
	observer.Event(Event{
		Type:    t,
		Phase:   phase,
		Message: ve.Message,
		Fields: map[string]string{
			"field": ve.Field,
		},
	})
}
