package invoke

import (
	"log"

	"github.com/gen2brain/beeep"
)

// NotifyTitle is the summary line of every notification.
const NotifyTitle = "claw-runner"

// Notifier shows short messages to the user. Implementations must not wait
// for the message to be dismissed.
type Notifier interface {
	Notify(message string) error
}

// DesktopNotifier posts freedesktop notifications.
type DesktopNotifier struct {
	Icon string
}

// Notify implements Notifier.
func (n DesktopNotifier) Notify(message string) error {
	return beeep.Notify(NotifyTitle, message, n.Icon)
}

// LogNotifier writes messages to the log. Used when no notification daemon
// is reachable and by the CLI in quiet terminals.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(message string) error {
	log.Printf("[invoke] notify: %s", message)
	return nil
}
