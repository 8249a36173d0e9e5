package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"pokehub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type pokemonListResponse struct {
	Total    int                     `json:"total"`
	Filtered int                     `json:"filtered"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Items    []models.PokemonSummary `json:"items"`
}

func main() {
	global := flag.NewFlagSet("pokehub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 30 * time.Second}

	switch args[0] {
	case "list":
		handleList(ctx, client, *baseURL, args[1:])
	case "get":
		handleGet(ctx, client, *baseURL, args[1:])
	case "generations":
		handleGenerations(ctx, client, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: pokehub [-api URL] <command>

commands:
  list         filtered, paginated catalog page
  get <name>   full detail view for one pokemon
  generations  the generation bucket table`)
}

func handleList(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	gen := fs.String("gen", "", "generation bucket name (1-8)")
	typ := fs.String("type", "", "required type name")
	minWeight := fs.String("min-weight", "", "minimum weight, kg")
	maxWeight := fs.String("max-weight", "", "maximum weight, kg")
	minHeight := fs.String("min-height", "", "minimum height, m")
	maxHeight := fs.String("max-height", "", "maximum height, m")
	minExp := fs.String("min-exp", "", "minimum base experience")
	maxExp := fs.String("max-exp", "", "maximum base experience")
	minSpeed := fs.String("min-speed", "", "minimum speed")
	maxSpeed := fs.String("max-speed", "", "maximum speed")
	page := fs.Int("page", 0, "zero-based page index")
	_ = fs.Parse(args)

	u, err := url.Parse(baseURL + "/pokemon")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	setIf(qv, "generation", *gen)
	setIf(qv, "type", *typ)
	setIf(qv, "min_weight", *minWeight)
	setIf(qv, "max_weight", *maxWeight)
	setIf(qv, "min_height", *minHeight)
	setIf(qv, "max_height", *maxHeight)
	setIf(qv, "min_base_exp", *minExp)
	setIf(qv, "max_base_exp", *maxExp)
	setIf(qv, "min_speed", *minSpeed)
	setIf(qv, "max_speed", *maxSpeed)
	qv.Set("page", fmt.Sprintf("%d", *page))
	u.RawQuery = qv.Encode()

	var resp pokemonListResponse
	if err := getJSON(ctx, client, u.String(), &resp); err != nil {
		log.Fatalf("list failed: %v", err)
	}

	fmt.Printf("page %d (%d of %d match)\n", resp.Page, resp.Filtered, resp.Total)
	for _, p := range resp.Items {
		fmt.Printf("%4d  %-16s %-18s %6.1fkg %5.1fm  exp %-4d speed %d\n",
			p.ID, p.Name, strings.Join(p.Types, "/"), p.WeightKg, p.HeightM, p.BaseExperience, p.Speed)
	}
}

func handleGet(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		log.Fatal("usage: pokehub get <name>")
	}
	name := strings.ToLower(strings.TrimSpace(args[0]))

	var detail models.PokemonDetail
	if err := getJSON(ctx, client, baseURL+"/pokemon/"+url.PathEscape(name), &detail); err != nil {
		log.Fatalf("get failed: %v", err)
	}
	printJSON(detail)
}

func handleGenerations(ctx context.Context, client *http.Client, baseURL string) {
	var resp map[string]any
	if err := getJSON(ctx, client, baseURL+"/generations", &resp); err != nil {
		log.Fatalf("generations failed: %v", err)
	}
	printJSON(resp)
}

func setIf(qv url.Values, key, val string) {
	if val != "" {
		qv.Set(key, val)
	}
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s failed: %s", endpoint, strings.TrimSpace(string(data)))
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}
