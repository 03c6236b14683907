package cli

import (
	"context"
	"fmt"
	"strings"
)

// RunClear удаляет все локальные данные и кэшированные ответы.
// Несинхронизированные изменения теряются, поэтому требуется подтверждение.
func (c *Cli) RunClear(ctx context.Context) error {
	pending, err := c.engine.PendingCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending counts: %w", err)
	}

	total := 0
	for _, count := range pending {
		total += count
	}
	if total > 0 {
		c.io.Printf("Warning: %d record(s) are not yet pushed to the server and will be lost.\n", total)
	}

	answer, err := c.io.ReadInput("Drop all local data and cached responses? [y/N]: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		c.io.Println("Aborted.")
		return nil
	}

	if err := c.engine.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}

	c.io.Println("Local data cleared.")
	return nil
}
