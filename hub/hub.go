package hub

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const EventOrderUpdated = "order:updated"

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// OrderEvent adalah event domain yang dipancarkan Order Engine pada
// setiap pembuatan order dan transisi status yang berhasil.
type OrderEvent struct {
	OrderID     uint   `json:"order_id"`
	TableNumber int    `json:"table_number"`
	GuestID     *uint  `json:"guest_id,omitempty"`
	HandlerID   *uint  `json:"handler_id,omitempty"`
	OldStatus   string `json:"old_status,omitempty"`
	NewStatus   string `json:"new_status"`
}

// Conn adalah koneksi websocket yang bisa ditulisi. *websocket.Conn
// memenuhinya; test memakai koneksi palsu.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub menampung asosiasi koneksi hidup -> identitas (account atau guest).
// Registry ini transient: tidak dipersist, dibangun ulang saat reconnect.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]utils.Identity
	// Index sekunder supaya fanout tidak perlu scan semua koneksi
	accounts map[uint]map[Conn]struct{}
	guests   map[uint]map[Conn]struct{}
	// Semua penulisan socket lewat satu goroutine; gorilla/websocket hanya
	// mengizinkan satu penulis per koneksi, dan urutan event ikut terjaga
	events chan OrderEvent
}

func NewHub() *Hub {
	h := &Hub{
		conns:    make(map[Conn]utils.Identity),
		accounts: make(map[uint]map[Conn]struct{}),
		guests:   make(map[uint]map[Conn]struct{}),
		events:   make(chan OrderEvent, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for ev := range h.events {
		h.publish(ev)
	}
}

// Register mengasosiasikan koneksi dengan satu identitas. Asosiasi lama
// untuk koneksi yang sama diganti.
func (h *Hub) Register(conn Conn, identity utils.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.conns[conn]; exists {
		h.detachLocked(conn)
	}

	h.conns[conn] = identity
	switch identity.Kind {
	case utils.IdentityStaff:
		if h.accounts[identity.AccountID] == nil {
			h.accounts[identity.AccountID] = make(map[Conn]struct{})
		}
		h.accounts[identity.AccountID][conn] = struct{}{}
	case utils.IdentityGuest:
		if h.guests[identity.GuestID] == nil {
			h.guests[identity.GuestID] = make(map[Conn]struct{})
		}
		h.guests[identity.GuestID][conn] = struct{}{}
	}
}

// Unregister melepas dan menutup koneksi; aman dipanggil berulang kali.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	dropped := h.detachLocked(conn)
	h.mu.Unlock()

	if dropped {
		conn.Close()
	}
}

func (h *Hub) detachLocked(conn Conn) bool {
	identity, exists := h.conns[conn]
	if !exists {
		return false
	}
	delete(h.conns, conn)

	switch identity.Kind {
	case utils.IdentityStaff:
		if set := h.accounts[identity.AccountID]; set != nil {
			delete(set, conn)
			if len(set) == 0 {
				delete(h.accounts, identity.AccountID)
			}
		}
	case utils.IdentityGuest:
		if set := h.guests[identity.GuestID]; set != nil {
			delete(set, conn)
			if len(set) == 0 {
				delete(h.guests, identity.GuestID)
			}
		}
	}
	return true
}

// PublishOrderEvent menyerahkan event ke writer goroutine supaya transisi
// order tidak pernah terblokir oleh socket lambat. Kalau buffer penuh
// event dibuang; client menyelaraskan ulang lewat REST.
func (h *Hub) PublishOrderEvent(ev OrderEvent) {
	select {
	case h.events <- ev:
	default:
		utils.ErrorLogger.Printf("event buffer full, dropping event for order #%d", ev.OrderID)
	}
}

// publish mengantar event ke Owner yang terkoneksi, employee yang
// menangani, dan guest pemilik order. Setiap koneksi menerima paling
// banyak satu kali; koneksi mati dibuang dan pengiriman lanjut.
func (h *Hub) publish(ev OrderEvent) {
	data, err := json.Marshal(Message{Event: EventOrderUpdated, Data: ev})
	if err != nil {
		utils.ErrorLogger.Printf("marshal order event: %v", err)
		return
	}

	h.mu.Lock()
	recipients := make(map[Conn]struct{})
	for conn, identity := range h.conns {
		if identity.IsStaff() && identity.Role == models.RoleOwner {
			recipients[conn] = struct{}{}
		}
	}
	if ev.HandlerID != nil {
		for conn := range h.accounts[*ev.HandlerID] {
			recipients[conn] = struct{}{}
		}
	}
	if ev.GuestID != nil {
		for conn := range h.guests[*ev.GuestID] {
			recipients[conn] = struct{}{}
		}
	}
	h.mu.Unlock()

	for conn := range recipients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Best effort: koneksi yang tidak terjangkau dibuang
			utils.ErrorLogger.Printf("drop unreachable connection: %v", err)
			h.Unregister(conn)
		}
	}
}

// ConnectionCount jumlah koneksi hidup, dipakai test dan endpoint debug.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
