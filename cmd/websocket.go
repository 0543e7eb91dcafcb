package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"barterBack/internal/models"
	"barterBack/internal/services"
)

/********** тайминги **********/
const (
	readLimit          = 1 << 20           // 1 MB
	readDeadline       = 120 * time.Second // дедлайн чтения (продлевается pong'ом)
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second // время на первый кадр {userId}
)

type directMsg struct {
	userID int
	msg    models.Message
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

// Все операции с clients — только здесь.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// если уже есть сокет у этого пользователя — закрываем старый
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			// удаляем только если совпадает текущий сокет
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.msg); err != nil {
					log.Printf("direct send error to=%d: %v", dm.userID, err)
					_ = conn.Close()
					delete(ws.clients, dm.userID)
				}
			} else {
				log.Printf("direct skip: user=%d offline", dm.userID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// Первым фреймом клиент обязан прислать { "userId": <int> }.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		UserID int `json:"userId"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.UserID == 0 {
		log.Println("invalid hello payload:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	client := Client{ID: hello.UserID, Socket: conn}
	app.wsManager.register <- client

	go pingLoop(app.wsManager, conn, hello.UserID)
	go handleWebSocketMessages(conn, hello.UserID, app.wsManager, app.messageService)
}

func pingLoop(ws *WebSocketManager, conn *websocket.Conn, uid int) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			ws.unregister <- unreg{userID: uid, conn: conn}
			return
		}
	}
}

func handleWebSocketMessages(conn *websocket.Conn, userID int, wsManager *WebSocketManager, messageService *services.MessageService) {
	defer func() {
		wsManager.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()

	for {
		var msg models.Message // ожидаем snake_case поля в JSON
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("read json error:", err)
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		if msg.SenderID != userID {
			log.Println("reject: sender_id != authenticated userId")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		saved, err := messageService.CreateMessage(ctx, msg)
		cancel()
		if err != nil {
			log.Println("save message error:", err)
			continue
		}

		// доставка получателю
		wsManager.direct <- directMsg{userID: saved.ReceiverID, msg: saved}
	}
}

// аккуратная отправка close-фрейма
func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
