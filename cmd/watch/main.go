package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

type anyEvent map[string]any

// Tails catalog lifecycle events from the api-server's /ws endpoint.
func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket endpoint")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	for {
		if err := run(*addr, *pretty); err != nil {
			log.Printf("[watch] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, pretty bool) error {
	ws, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer ws.Close()

	log.Printf("[watch] connected to %s", addr)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			return err
		}

		if !pretty {
			fmt.Println(string(msg))
			continue
		}

		var obj anyEvent
		if err := json.Unmarshal(msg, &obj); err != nil {
			// not JSON? print raw
			fmt.Println(string(msg))
			continue
		}
		out, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			fmt.Println(string(msg))
			continue
		}
		fmt.Println(string(out))
	}
}
