package ports

// AlertSink is the UI-notification collaborator, rendering toasts or sounds
// for engine-observable events. Calls are fire-and-forget, the engine never
// depends on their outcome.
type AlertSink interface {
	Alert(kind, message string)
}
