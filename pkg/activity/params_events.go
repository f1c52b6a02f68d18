package activity

import (
	"strings"
	"time"
)

// Verbs emitted by parameter containers.
const (
	VerbAdded           = "params.added"
	VerbRemoved         = "params.removed"
	VerbUpdated         = "params.updated"
	VerbOverrideApplied = "params.override.applied"
)

// Metadata keys set on parameter events.
const (
	MetaPath     = "path"
	MetaOldValue = "old_value"
	MetaNewValue = "new_value"
	MetaSource   = "source"
)

// DefaultObjectType is used when a container has no name.
const DefaultObjectType = "params"

// ParamEventInput describes the common fields for parameter events.
type ParamEventInput struct {
	ActorID   string
	UserID    string
	TenantID  string
	Channel   string
	Container string
	Path      string
	OldValue  any
	NewValue  any
	// Source is the command line argument or file that produced the value.
	Source     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildParamAddedEvent builds the event for a declared parameter.
func BuildParamAddedEvent(input ParamEventInput) Event {
	return buildParamEvent(VerbAdded, input)
}

// BuildParamRemovedEvent builds the event for a removed parameter.
func BuildParamRemovedEvent(input ParamEventInput) Event {
	return buildParamEvent(VerbRemoved, input)
}

// BuildParamUpdatedEvent builds the event for an effective value change.
func BuildParamUpdatedEvent(input ParamEventInput) Event {
	return buildParamEvent(VerbUpdated, input)
}

// BuildOverrideAppliedEvent builds the event for a command line override.
func BuildOverrideAppliedEvent(input ParamEventInput) Event {
	return buildParamEvent(VerbOverrideApplied, input)
}

func buildParamEvent(verb string, input ParamEventInput) Event {
	metadata := cloneMap(input.Metadata)
	set := func(key string, value any) {
		if metadata == nil {
			metadata = map[string]any{}
		}
		metadata[key] = value
	}
	path := strings.TrimSpace(input.Path)
	if path != "" {
		set(MetaPath, path)
	}
	if input.OldValue != nil {
		set(MetaOldValue, input.OldValue)
	}
	if input.NewValue != nil {
		set(MetaNewValue, input.NewValue)
	}
	if source := strings.TrimSpace(input.Source); source != "" {
		set(MetaSource, source)
	}

	objectType := strings.TrimSpace(input.Container)
	if objectType == "" {
		objectType = DefaultObjectType
	}
	objectID := path
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}
