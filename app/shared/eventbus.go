// Package shared holds the cross-module contracts that keep the catalog and
// scoring modules decoupled from concrete infrastructure.
package shared

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the messaging boundary. Modules publish and subscribe through
// it; the JetStream-backed implementation lives in app/eventbus.
type EventBus interface {
	// Publish sends a message on a subject. The stream owning the subject
	// must exist already (see CreateStream).
	Publish(ctx context.Context, subject string, msg *message.Message) error

	// Subscribe delivers messages on a subject to the handler until the
	// context ends. A handler error nacks the message.
	Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error

	// CreateStream ensures a JetStream stream exists covering the subjects.
	CreateStream(ctx context.Context, streamName string, subjects ...string) error

	Close() error
}
