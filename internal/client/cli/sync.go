package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vmikh/offsync/internal/engine"
)

// RunSync выполняет один полный цикл синхронизации всех типов ресурсов
func (c *Cli) RunSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	results, err := c.engine.SyncAll(ctx)
	if errors.Is(err, engine.ErrSyncInProgress) {
		c.io.Println("Another sync cycle is already running, nothing to do.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var pulled, pushed, applied int
	for _, name := range names {
		r := results[name]
		c.io.Printf("%-16s pulled %d, applied %d, pushed %d\n", name, r.Pulled, r.Applied, r.Pushed)
		pulled += r.Pulled
		pushed += r.Pushed
		applied += r.Applied
	}

	c.io.Println()
	c.io.Printf("Done: %d pulled, %d applied, %d pushed.\n", pulled, applied, pushed)

	return nil
}
