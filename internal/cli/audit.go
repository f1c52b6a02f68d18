package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/goliatone/go-params/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
)

// auditSink writes activity records to the CLI logger.
type auditSink struct {
	logger *log.Logger
}

func (s auditSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	keyvals := []any{"object", record.ObjectType, "path", record.ObjectID, "channel", record.Channel}
	for _, key := range []string{activity.MetaOldValue, activity.MetaNewValue, activity.MetaSource} {
		if value, ok := record.Data[key]; ok {
			keyvals = append(keyvals, key, value)
		}
	}
	s.logger.Info(record.Verb, keyvals...)
	return nil
}
