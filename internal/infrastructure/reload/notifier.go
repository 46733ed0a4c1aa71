// Package reload signals the running status-bar process to pick up a new
// configuration. The bar is an external collaborator: all we do is run the
// configured reload command.
package reload

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Notifier runs the configured reload command after a successful save.
type Notifier struct {
	command string
}

// NewNotifier creates a notifier. An empty command makes Notify a logged
// no-op.
func NewNotifier(command string) *Notifier {
	return &Notifier{command: command}
}

// Notify signals the bar process.
func (n *Notifier) Notify(ctx context.Context) error {
	if strings.TrimSpace(n.command) == "" {
		slog.Debug("no reload command configured, skipping bar notification")
		return nil
	}

	parts := strings.Fields(n.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("reload command %q failed: %w (output: %s)",
			n.command, err, strings.TrimSpace(string(out)))
	}

	slog.Info("bar reload signaled", "command", parts[0])
	return nil
}
