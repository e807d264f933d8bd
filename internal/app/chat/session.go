package chat

// Session is the outbound half of the per-connection transport channel.
// The hub never touches a socket directly; it hands named events to the
// session, which is responsible for delivery.
//
// Send must never block: delivery is fire-and-forget, and a slow or
// disconnected receiver must not hold up delivery to anyone else.
type Session interface {
	// Send enqueues a named event with a payload for delivery.
	Send(event string, payload any)

	// Close releases the session's outbound resources. Safe to call more
	// than once.
	Close()
}
