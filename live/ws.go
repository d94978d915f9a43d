package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"evenza/middleware"
	"evenza/mq"
	"evenza/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades a dashboard connection for one event's live feed.
// Clients authenticate with a token query parameter since browsers cannot set
// headers on websocket requests.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		eventID := ps.ByName("eventid")

		token := r.URL.Query().Get("token")
		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Send:    make(chan []byte, 256),
			EventID: eventID,
			UserID:  claims.UserID,
		}
		hub.register <- client

		go writePump(client, conn)
		go readPump(client, conn, hub)
	}
}

func writePump(c *Client, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, conn *websocket.Conn, hub *Hub) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()
	for {
		// Dashboards only listen; reads just detect disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// StartRelay subscribes to the entity-event channel and rebroadcasts changes
// to the dashboards watching the affected event.
func StartRelay(hub *Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, mq.Channel)
	ch := sub.Channel()

	log.Println("[LiveRelay] relaying entity events to dashboards")
	for msg := range ch {
		var event mq.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			continue
		}

		eventID := event.ItemId
		if event.EntityType == "event" {
			eventID = event.EntityId
		}
		if eventID == "" {
			continue
		}
		hub.Broadcast(eventID, Update{
			Action:  event.Method,
			EventID: eventID,
			Entity:  event.EntityType,
			ID:      event.EntityId,
		})
	}
}
