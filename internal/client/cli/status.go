package cli

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// RunStatus печатает состояние синхронизации: связь с сервером,
// количество несинхронизированных записей и время последних циклов
func (c *Cli) RunStatus(ctx context.Context) error {
	c.io.Println("=== Sync Status ===")
	c.io.Println()

	if c.engine.Online() {
		c.io.Println("Server: reachable")
	} else {
		c.io.Println("Server: offline (changes are kept locally)")
	}

	pending, err := c.engine.PendingCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending counts: %w", err)
	}

	lastSync := c.engine.LastSyncTimes(ctx)

	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
	}
	sort.Strings(names)

	c.io.Println()
	total := 0
	for _, name := range names {
		count := pending[name]
		total += count

		when := "never"
		if ms, ok := lastSync[name]; ok && ms > 0 {
			when = time.UnixMilli(ms).Local().Format(time.RFC3339)
		}
		c.io.Printf("%-16s pending: %-4d last sync: %s\n", name, count, when)
	}

	c.io.Println()
	if total > 0 {
		c.io.Printf("%d record(s) waiting to be synchronized.\n", total)
		c.io.Println("Run 'offsync sync' to push them to the server.")
	} else {
		c.io.Println("All data synchronized with server.")
	}

	return nil
}
