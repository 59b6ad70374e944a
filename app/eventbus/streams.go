package eventbus

import (
	"context"
	"fmt"

	scoringevents "github.com/fairway-labs/looper/app/modules/scoring/events"
	"github.com/fairway-labs/looper/app/shared"
)

// InitializeStreams creates the streams the scoring module publishes and
// consumes during application startup.
func InitializeStreams(ctx context.Context, bus shared.EventBus) error {
	if err := bus.CreateStream(ctx, scoringevents.StreamName, scoringevents.StreamSubjects...); err != nil {
		return fmt.Errorf("failed to initialize scoring stream: %w", err)
	}
	return nil
}
