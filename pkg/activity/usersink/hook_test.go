package usersink_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-params/pkg/activity"
	"github.com/goliatone/go-params/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

type named string

func (n named) String() string { return "named:" + string(n) }

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()

	event := activity.BuildParamUpdatedEvent(activity.ParamEventInput{
		ActorID:    actorID.String(),
		UserID:     userID.String(),
		TenantID:   tenantID.String(),
		Container:  "Text",
		Path:       "text_halign",
		OldValue:   "left",
		NewValue:   named("center"),
		Channel:    "params",
		OccurredAt: now,
	})

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.UserID != userID || record.TenantID != tenantID {
		t.Fatalf("unexpected identities: %+v", record)
	}
	if record.Verb != activity.VerbUpdated || record.ObjectType != "Text" || record.ObjectID != "text_halign" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "params" {
		t.Fatalf("expected channel params got %q", record.Channel)
	}
	if !record.OccurredAt.Equal(now) {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["path"] != "text_halign" || record.Data["old_value"] != "left" {
		t.Fatalf("expected metadata passthrough got %v", record.Data)
	}
	if record.Data["new_value"] != "named:center" {
		t.Fatalf("expected stringer rendered, got %v", record.Data["new_value"])
	}
}

func TestHookChannelOverride(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink, Channel: "audit"}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbAdded,
		ObjectType: "params",
		ObjectID:   "name",
		Channel:    "params",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].Channel != "audit" {
		t.Fatalf("expected channel override, got %q", sink.records[0].Channel)
	}
	if sink.records[0].ActorID != uuid.Nil {
		t.Fatalf("expected nil actor for empty id")
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyDefaultsTimestamp(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbRemoved,
		ObjectType: "params",
		ObjectID:   "1",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestRecordRejectsIncompleteEvents(t *testing.T) {
	if _, ok := usersink.Record(activity.Event{Verb: activity.VerbUpdated, ObjectType: "Text"}); ok {
		t.Fatalf("expected event without object id to be rejected")
	}
	record, ok := usersink.Record(activity.BuildOverrideAppliedEvent(activity.ParamEventInput{
		Container: "Text",
		Path:      "rotate",
		NewValue:  90,
		Source:    "Text:rotate=90",
		ActorID:   "not-a-uuid",
	}))
	if !ok {
		t.Fatalf("expected record")
	}
	if record.ActorID != uuid.Nil || record.Data["source"] != "Text:rotate=90" || record.Data["new_value"] != 90 {
		t.Fatalf("unexpected record %+v", record)
	}
}
