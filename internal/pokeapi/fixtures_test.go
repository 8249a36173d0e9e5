package pokeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fixtureServer serves canned upstream-shaped documents for tests. Handlers
// are registered after the server starts so payloads can embed the server's
// own URL, the way the live service embeds absolute resource URLs.
type fixtureServer struct {
	*httptest.Server
	mux *http.ServeMux
}

func newFixtureServer(t *testing.T) *fixtureServer {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &fixtureServer{Server: srv, mux: mux}
}

func (f *fixtureServer) client() *Client {
	return NewClient(f.URL+"/api/v2", 5*time.Second)
}

// serve registers a JSON document at an /api/v2 path.
func (f *fixtureServer) serve(path string, doc any) {
	f.mux.HandleFunc("/api/v2/"+path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})
}

// serveStatus registers a fixed non-200 response at an /api/v2 path.
func (f *fixtureServer) serveStatus(path string, code int) {
	f.mux.HandleFunc("/api/v2/"+path, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(code), code)
	})
}

func (f *fixtureServer) speciesURL(id int) string {
	return fmt.Sprintf("%s/api/v2/pokemon-species/%d/", f.URL, id)
}

func (f *fixtureServer) chainURL(id int) string {
	return fmt.Sprintf("%s/api/v2/evolution-chain/%d/", f.URL, id)
}

func (f *fixtureServer) abilityURL(name string) string {
	return fmt.Sprintf("%s/api/v2/ability/%s/", f.URL, name)
}

func (f *fixtureServer) typeURL(name string) string {
	return fmt.Sprintf("%s/api/v2/type/%s/", f.URL, name)
}

func (f *fixtureServer) spriteURL(id int) string {
	return fmt.Sprintf("%s/sprites/%d.png", f.URL, id)
}

// statList builds a full six-stat block with the given speed. Order is
// shuffled relative to the upstream's usual layout on purpose: nothing may
// depend on positions.
func statList(speed int) []map[string]any {
	mk := func(name string, v int) map[string]any {
		return map[string]any{"base_stat": v, "stat": map[string]any{"name": name}}
	}
	return []map[string]any{
		mk("speed", speed),
		mk("hp", 45),
		mk("attack", 49),
		mk("defense", 49),
		mk("special-attack", 65),
		mk("special-defense", 65),
	}
}

func (f *fixtureServer) typeRefs(names ...string) []map[string]any {
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{
			"type": map[string]any{"name": n, "url": f.typeURL(n)},
		})
	}
	return out
}

func (f *fixtureServer) abilityRefs(hidden map[string]bool, names ...string) []map[string]any {
	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{
			"is_hidden": hidden[n],
			"ability":   map[string]any{"name": n, "url": f.abilityURL(n)},
		})
	}
	return out
}

// pokemonDoc builds a primary record; overrides replace top-level fields.
func (f *fixtureServer) pokemonDoc(id int, name string, types []string, overrides map[string]any) map[string]any {
	doc := map[string]any{
		"id":              id,
		"name":            name,
		"base_experience": 64,
		"height":          7,
		"weight":          69,
		"abilities":       []map[string]any{},
		"sprites":         map[string]any{"front_default": f.spriteURL(id)},
		"stats":           statList(45),
		"types":           f.typeRefs(types...),
		"species":         map[string]any{"name": name, "url": f.speciesURL(id)},
	}
	for k, v := range overrides {
		doc[k] = v
	}
	return doc
}

func englishEntry(field, text string) map[string]any {
	return map[string]any{field: text, "language": map[string]any{"name": "en"}}
}

func foreignEntry(field, text string) map[string]any {
	return map[string]any{field: text, "language": map[string]any{"name": "ja"}}
}

func (f *fixtureServer) speciesDoc(chainID int, overrides map[string]any) map[string]any {
	doc := map[string]any{
		"flavor_text_entries": []map[string]any{
			foreignEntry("flavor_text", "たね"),
			englishEntry("flavor_text", "A strange seed was planted on its back at birth."),
		},
		"genera": []map[string]any{
			foreignEntry("genus", "たねポケモン"),
			englishEntry("genus", "Seed Pokemon"),
		},
		"generation":      map[string]any{"name": "generation-i"},
		"color":           map[string]any{"name": "green"},
		"evolution_chain": map[string]any{"url": f.chainURL(chainID)},
	}
	for k, v := range overrides {
		doc[k] = v
	}
	return doc
}

func (f *fixtureServer) chainLink(name string, id int, evolvesTo ...map[string]any) map[string]any {
	if evolvesTo == nil {
		evolvesTo = []map[string]any{}
	}
	return map[string]any{
		"species":    map[string]any{"name": name, "url": f.speciesURL(id)},
		"evolves_to": evolvesTo,
	}
}

func abilityDoc(english string) map[string]any {
	entries := []map[string]any{foreignEntry("flavor_text", "???")}
	if english != "" {
		entries = append(entries, englishEntry("flavor_text", english))
	}
	return map[string]any{"flavor_text_entries": entries}
}

func typeDoc(doubleDamageFrom ...string) map[string]any {
	froms := make([]map[string]any, 0, len(doubleDamageFrom))
	for _, n := range doubleDamageFrom {
		froms = append(froms, map[string]any{"name": n})
	}
	return map[string]any{
		"damage_relations": map[string]any{"double_damage_from": froms},
	}
}
