package notify

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
)

// Notifier reports job lifecycle events to the user.
type Notifier interface {
	JobStarted(source string)
	JobCompleted(source string, language string)
	JobFailed(source string, err error)
}

// New returns the notifier for the configured type. Disabled or unknown
// configurations get the no-op notifier.
func New(enabled bool, kind string) Notifier {
	if !enabled {
		return Nop{}
	}
	switch kind {
	case "desktop":
		return Desktop{}
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}

type Desktop struct{}

func (Desktop) JobStarted(source string) {
	send(fmt.Sprintf("Scribeflow: processing %s", filepath.Base(source)), false)
}

func (Desktop) JobCompleted(source string, language string) {
	msg := fmt.Sprintf("Scribeflow: finished %s", filepath.Base(source))
	if language != "" {
		msg += fmt.Sprintf(" (%s)", language)
	}
	send(msg, false)
}

func (Desktop) JobFailed(source string, err error) {
	send(fmt.Sprintf("Scribeflow: failed %s: %v", filepath.Base(source), err), true)
}

func send(msg string, critical bool) {
	args := []string{"-a", "Scribeflow"}
	if critical {
		args = append(args, "-u", "critical")
	}
	args = append(args, msg)
	if err := exec.Command("notify-send", args...).Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

// Log reports job events through the standard logger.
type Log struct{}

func (Log) JobStarted(source string) {
	log.Printf("notify: processing %s", source)
}

func (Log) JobCompleted(source string, language string) {
	log.Printf("notify: finished %s (language %q)", source, language)
}

func (Log) JobFailed(source string, err error) {
	log.Printf("notify: failed %s: %v", source, err)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) JobStarted(source string)                    {}
func (Nop) JobCompleted(source string, language string) {}
func (Nop) JobFailed(source string, err error)          {}
