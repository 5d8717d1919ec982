//go:build !linux

package notify

// New returns Nop on platforms without a freedesktop notification server.
func New() (Notifier, error) {
	return Nop{}, nil
}
