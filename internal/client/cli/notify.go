package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/rishank14/serenityspace-cli/internal/client/models"
)

// TerminalNotifier renders delivery notifications on the terminal. It
// implements vault.Notifier; the reconciler calls it exactly once per entry
// that transitions into delivered.
type TerminalNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (n *TerminalNotifier) EntryDelivered(entry models.VaultEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "\n[vault] A message from your past self has arrived (scheduled %s):\n  %s\n",
		models.FormatDeliveryTime(entry.DeliverAt), entry.Message)
}
