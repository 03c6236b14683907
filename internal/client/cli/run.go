package cli

import (
	"context"
)

// RunDaemon запускает планировщик и блокируется до отмены контекста
func (c *Cli) RunDaemon(ctx context.Context) error {
	c.io.Println("Sync daemon started. Press Ctrl+C to stop.")

	c.engine.Start(ctx)
	<-ctx.Done()
	c.engine.Stop()

	c.io.Println("Sync daemon stopped.")
	return nil
}
