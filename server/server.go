// Package server streams a finished distance field to preview clients over
// websockets. Clients receive the field's metadata on connect and may then
// request 2D slices along any axis.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"sdfworld/core"
	"sdfworld/export"
)

// InfoMessage describes the served field.
type InfoMessage struct {
	Type   string  `json:"type"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Depth  int     `json:"depth"`
	Layout string  `json:"layout"`
	Min    float32 `json:"min"`
	Max    float32 `json:"max"`
	Solid  float64 `json:"solid"`
}

// SliceRequest asks for the plane perpendicular to Axis at Index.
type SliceRequest struct {
	Axis  string `json:"axis"`
	Index int    `json:"index"`
}

// SliceMessage carries one plane, first remaining axis fastest.
type SliceMessage struct {
	Type   string    `json:"type"`
	Axis   string    `json:"axis"`
	Index  int       `json:"index"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float32 `json:"values"`
}

// ErrorMessage reports a rejected request; the connection stays open.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Server serves one immutable distance field.
type Server struct {
	field    *core.DistanceField
	info     InfoMessage
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]struct{}
}

// New creates a server for field.
func New(field *core.DistanceField) *Server {
	stats := field.Stats()
	return &Server{
		field: field,
		info: InfoMessage{
			Type:   "info",
			Width:  field.Width,
			Height: field.Height,
			Depth:  field.Depth,
			Layout: export.Layout,
			Min:    stats.Min,
			Max:    stats.Max,
			Solid:  stats.SolidFraction(),
		},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // preview tool, any origin
			},
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP routes: /field for metadata and /ws for the
// slice stream.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/field", s.serveInfo)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	core.Logger().Info("preview server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) serveInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.info); err != nil {
		core.Logger().Warn("write field info", "err", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := core.Logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	if err := conn.WriteJSON(s.info); err != nil {
		log.Warn("send field info", "err", err)
		return
	}

	for {
		var req SliceRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", "err", err)
			}
			return
		}

		if err := conn.WriteJSON(s.slice(req)); err != nil {
			log.Warn("websocket write error", "err", err)
			return
		}
	}
}

// slice answers one request with a SliceMessage or an ErrorMessage.
func (s *Server) slice(req SliceRequest) any {
	axis, err := core.ParseAxis(req.Axis)
	if err != nil {
		return ErrorMessage{Type: "error", Error: err.Error()}
	}
	w, h, values, err := s.field.Slice(axis, req.Index)
	if err != nil {
		return ErrorMessage{Type: "error", Error: err.Error()}
	}
	return SliceMessage{
		Type:   "slice",
		Axis:   axis.String(),
		Index:  req.Index,
		Width:  w,
		Height: h,
		Values: values,
	}
}
