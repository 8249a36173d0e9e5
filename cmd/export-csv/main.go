package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pokehub/pkg/models"
)

type listResponse struct {
	Filtered int                     `json:"filtered"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Items    []models.PokemonSummary `json:"items"`
}

// Pages through the running api-server's catalog and writes it to CSV.
func main() {
	var (
		baseURL = flag.String("api", "http://localhost:8080", "API base URL")
		out     = flag.String("out", "data/pokemon.csv", "output CSV path")
		gen     = flag.String("gen", "", "optional generation filter")
		typ     = flag.String("type", "", "optional type filter")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 30 * time.Second}

	if err := export(ctx, client, *baseURL, *out, *gen, *typ); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported catalog to %s", *out)
}

func export(ctx context.Context, client *http.Client, baseURL, outPath, gen, typ string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "types", "image_url", "weight_kg", "height_m", "base_experience", "speed"}); err != nil {
		return err
	}

	for page := 0; ; page++ {
		resp, err := fetchPage(ctx, client, baseURL, gen, typ, page)
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, p := range resp.Items {
			rec := []string{
				strconv.Itoa(p.ID),
				p.Name,
				strings.Join(p.Types, "|"),
				p.ImageURL,
				strconv.FormatFloat(p.WeightKg, 'f', 1, 64),
				strconv.FormatFloat(p.HeightM, 'f', 1, 64),
				strconv.Itoa(p.BaseExperience),
				strconv.Itoa(p.Speed),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func fetchPage(ctx context.Context, client *http.Client, baseURL, gen, typ string, page int) (*listResponse, error) {
	u, err := url.Parse(baseURL + "/pokemon")
	if err != nil {
		return nil, err
	}
	qv := u.Query()
	if gen != "" {
		qv.Set("generation", gen)
	}
	if typ != "" {
		qv.Set("type", typ)
	}
	qv.Set("page", strconv.Itoa(page))
	u.RawQuery = qv.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page %d: status %d: %s", page, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
