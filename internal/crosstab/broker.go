package crosstab

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Broker локальный websocket хаб: принимает соединения мостов и
// ретранслирует каждое событие всем остальным подключениям.
// Broker не интерпретирует события, фильтрация эха - дело мостов.
type Broker struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]chan Message
}

// NewBroker создает хаб
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		logger: logger,
		upgrader: websocket.Upgrader{
			// Мост локальный, чужих origin'ов тут не бывает
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]chan Message),
	}
}

// ServeHTTP принимает websocket соединение и гоняет события между мостами
func (br *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := br.upgrader.Upgrade(w, r, nil)
	if err != nil {
		br.logger.Warn("Failed to upgrade crosstab connection", "error", err)
		return
	}

	out := make(chan Message, 16)

	br.mu.Lock()
	br.conns[conn] = out
	br.mu.Unlock()

	defer func() {
		br.mu.Lock()
		delete(br.conns, conn)
		br.mu.Unlock()
		close(out)
		_ = conn.Close()
	}()

	go func() {
		for msg := range out {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				br.logger.Debug("Crosstab connection closed", "error", err)
			}
			return
		}
		br.broadcast(conn, msg)
	}
}

// broadcast раздает событие всем соединениям кроме отправившего
func (br *Broker) broadcast(from *websocket.Conn, msg Message) {
	br.mu.Lock()
	defer br.mu.Unlock()

	for conn, out := range br.conns {
		if conn == from {
			continue
		}
		select {
		case out <- msg:
		default:
			// Переполненное соединение пропускает событие
		}
	}
}
