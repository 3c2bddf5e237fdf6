package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"askdocs/pkg/pipeline"
	"askdocs/pkg/retriever"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

// Message is the JSON frame exchanged over the websocket.
type Message struct {
	Type    string `json:"type"` // "question", "stream", "sources", "done", "error"
	Content string `json:"content"`
}

// WSServer serves the question/answer flow over a websocket, streaming
// answer fragments as they are generated.
type WSServer struct {
	pipeline *pipeline.Pipeline
	port     string
}

func New(p *pipeline.Pipeline, port string) *WSServer {
	if port == "" {
		port = "8080"
	}
	return &WSServer{pipeline: p, port: port}
}

// ListenAndServe registers the /ws and /health endpoints and blocks.
func (s *WSServer) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Printf("Starting WebSocket server on port %s", s.port)
	return http.ListenAndServe(":"+s.port, mux)
}

func (s *WSServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("Error reading message: %v", err)
			break
		}

		if msg.Type != "question" || strings.TrimSpace(msg.Content) == "" {
			s.sendMessage(conn, "error", "expected a non-empty question message")
			continue
		}

		s.handleQuestion(r.Context(), conn, msg.Content)
	}
}

func (s *WSServer) handleQuestion(ctx context.Context, conn *websocket.Conn, question string) {
	stream, rc, err := s.pipeline.AskStream(ctx, question)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Error: %v", err))
		return
	}

	for chunk := range stream {
		if strings.HasPrefix(chunk, "Error:") {
			s.sendMessage(conn, "error", chunk)
			return
		}
		s.sendMessage(conn, "stream", chunk)
	}

	if len(rc.Matches) > 0 {
		stats := retriever.RetrievalStats(rc.Matches)
		var sources []string
		for source := range stats.Sources {
			sources = append(sources, source)
		}
		s.sendMessage(conn, "sources", strings.Join(sources, ", "))
	}

	s.sendMessage(conn, "done", "")
}

func (s *WSServer) sendMessage(conn *websocket.Conn, msgType, content string) {
	msg := Message{Type: msgType, Content: content}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
