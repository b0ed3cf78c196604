// Package notify delivers short user-facing status messages ("entry queued",
// "sync complete") without coupling the sync core to the UI.
package notify

// Notifier receives one-line status messages for the user.
type Notifier interface {
	Notify(msg string)
}

// Func adapts an ordinary function to the Notifier interface.
type Func func(msg string)

func (f Func) Notify(msg string) { f(msg) }

// Nop discards all messages. Useful in tests.
type Nop struct{}

func (Nop) Notify(string) {}
