// Package cli реализует команды клиента offsync поверх координатора
// синхронизации. Команды не трогают сеть напрямую - всю работу делает
// движок, cli только форматирует ввод-вывод.
package cli

import (
	"context"
	"fmt"

	"github.com/vmikh/offsync/internal/client/iocli"
	"github.com/vmikh/offsync/internal/engine"
)

//go:generate moq -out coordinator_mock.go . Coordinator

// Coordinator операции движка синхронизации, нужные командам клиента
type Coordinator interface {
	Start(ctx context.Context)
	Stop()
	SyncAll(ctx context.Context) (map[string]*engine.SyncResult, error)
	PendingCounts(ctx context.Context) (map[string]int, error)
	LastSyncTimes(ctx context.Context) map[string]int64
	Online() bool
	ClearAll(ctx context.Context) error
}

type Cli struct {
	io     iocli.IO
	engine Coordinator
}

func New(io iocli.IO, eng Coordinator) *Cli {
	return &Cli{
		io:     io,
		engine: eng,
	}
}

func PrintUsage() {
	fmt.Println("offsync - offline-first synchronization client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  offsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --config PATH    Path to YAML configuration file")
	fmt.Println("  --server URL     Server URL (overrides config)")
	fmt.Println("  --db PATH        Path to local database (overrides config)")
	fmt.Println("  --user ID        User identifier sent to the server")
	fmt.Println("  --metrics ADDR   Expose cache metrics in Prometheus format (run only)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run              Run the sync daemon (scheduler + cross-tab bridge)")
	fmt.Println("  sync             Synchronize all resource types once and exit")
	fmt.Println("  status           Show pending changes and last sync times")
	fmt.Println("  clear            Drop all local data and cached responses")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  offsync --config offsync.yaml run")
	fmt.Println("  offsync --server https://example.com --user alice sync")
	fmt.Println("  offsync status")
}
