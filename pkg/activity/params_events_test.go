package activity

import (
	"context"
	"testing"
)

func TestBuildParamUpdatedEventMetadata(t *testing.T) {
	meta := map[string]any{"custom": "value"}
	input := ParamEventInput{
		ActorID:   " actor ",
		Container: "Text",
		Path:      "text_color",
		OldValue:  []float64{1, 1, 1},
		NewValue:  []float64{0, 0, 0},
		Metadata:  meta,
		Channel:   "params",
	}

	event := BuildParamUpdatedEvent(input)

	if event.Verb != VerbUpdated {
		t.Fatalf("expected verb %s got %s", VerbUpdated, event.Verb)
	}
	if event.ObjectType != "Text" || event.ObjectID != "text_color" {
		t.Fatalf("unexpected object fields: %+v", event)
	}
	if event.ActorID != "actor" {
		t.Fatalf("unexpected actor: %q", event.ActorID)
	}
	if event.Metadata["path"] != "text_color" || event.Metadata["custom"] != "value" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}
	if _, ok := event.Metadata["old_value"].([]float64); !ok {
		t.Fatalf("expected old_value, got %v", event.Metadata["old_value"])
	}
	if _, ok := event.Metadata["source"]; ok {
		t.Fatalf("expected no source metadata")
	}
	event.Metadata["custom"] = "changed"
	if meta["custom"] != "value" {
		t.Fatalf("expected input metadata untouched")
	}
}

func TestBuildParamRemovedEventFallbacks(t *testing.T) {
	event := BuildParamRemovedEvent(ParamEventInput{})
	if event.ObjectType != DefaultObjectType || event.ObjectID != DefaultObjectType {
		t.Fatalf("unexpected fallback object fields: %+v", event)
	}
	if event.Metadata != nil {
		t.Fatalf("expected nil metadata, got %v", event.Metadata)
	}
}

func TestBuildOverrideAppliedEventRecordsSource(t *testing.T) {
	capture := &CaptureHook{}
	event := BuildOverrideAppliedEvent(ParamEventInput{
		Container: "Foo",
		Path:      "x",
		NewValue:  2,
		Source:    "Foo:x=2",
	})
	if err := (Hooks{capture}).Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(capture.Events))
	}
	got := capture.Events[0]
	if got.Verb != VerbOverrideApplied || got.Metadata["source"] != "Foo:x=2" {
		t.Fatalf("unexpected event: %+v", got)
	}
}
