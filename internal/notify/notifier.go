package notify

// Event is an out-of-band push to a player, delivered outside the
// request/response cycle
type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Notifier is the notification port the engine pushes through. The engine
// never talks to connections directly; transports implement this.
type Notifier interface {
	// Send delivers an event to a player. Delivery is best effort: a
	// player without a live connection is not an error.
	Send(playerID string, event Event)
}

// NoopNotifier discards every event
type NoopNotifier struct{}

// Send implements Notifier
func (NoopNotifier) Send(playerID string, event Event) {}

// NewNoopNotifier creates a notifier that discards everything
func NewNoopNotifier() Notifier {
	return NoopNotifier{}
}
