package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	bus      *Bus
	upgrader websocket.Upgrader
}

func NewHandler(bus *Bus) *Handler {
	return &Handler{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

type changeMessage struct {
	Table string `json:"table"`
}

// HandleWS streams table-change notifications to the client until it
// disconnects. Messages carry only the table name; the client is expected to
// re-fetch the table through the regular REST endpoints.
func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.New().String()
	log.Printf("realtime client connected: %s", connID)

	changes := h.bus.Subscribe(c.Request.Context(), AllTables()...)

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case table := <-changes:
			if err := conn.WriteJSON(changeMessage{Table: table}); err != nil {
				log.Printf("realtime client %s write failed: %v", connID, err)
				return
			}
		case <-clientClosed:
			log.Printf("realtime client disconnected: %s", connID)
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
