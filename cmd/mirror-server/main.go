package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Serves canned upstream-shaped JSON from a fixtures directory so the
// api-server can run demo-safe without the live service. A request for
// /api/v2/pokemon/25 is answered from <data>/pokemon/25.json, and the same
// pattern covers pokemon-species, evolution-chain, ability and type.
func main() {
	dataDir := flag.String("data", "data/fixtures", "fixtures directory")
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	http.HandleFunc("/api/v2/", func(w http.ResponseWriter, r *http.Request) {
		rel := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v2/"), "/")
		if rel == "" || strings.Contains(rel, "..") {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(*dataDir, filepath.FromSlash(rel)+".json")
		b, err := os.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		// validate JSON so a bad fixture doesn't silently break clients
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			http.Error(w, "fixture invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	log.Printf("mirror-server serving %s on %s", *dataDir, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
