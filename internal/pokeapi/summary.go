package pokeapi

import (
	"context"
	"fmt"
	"strings"

	"pokehub/pkg/models"
)

// namedRef is the {name, url} pair the upstream embeds everywhere.
type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// rawPokemon is the primary entity record shape.
type rawPokemon struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	BaseExperience int    `json:"base_experience"`
	Height         int    `json:"height"` // decimeters
	Weight         int    `json:"weight"` // hectograms
	Abilities      []struct {
		IsHidden bool     `json:"is_hidden"`
		Ability  namedRef `json:"ability"`
	} `json:"abilities"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     namedRef `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Type namedRef `json:"type"`
	} `json:"types"`
	Species namedRef `json:"species"`
}

func (r *rawPokemon) typeNames() []string {
	names := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// statByName looks stats up by their upstream name instead of trusting the
// list position (position 5 being "speed" is not a contract worth keeping).
func (r *rawPokemon) statByName(name string) (int, bool) {
	for _, s := range r.Stats {
		if s.Stat.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

func (r *rawPokemon) statBlock() map[string]int {
	out := make(map[string]int, len(r.Stats))
	for _, s := range r.Stats {
		out[s.Stat.Name] = s.BaseStat
	}
	return out
}

// summary maps the raw record to the normalized catalog form. Weight and
// height come in as raw tenths and leave as kg / m.
func (r *rawPokemon) summary() (models.PokemonSummary, error) {
	if r.ID <= 0 || r.Name == "" {
		return models.PokemonSummary{}, fmt.Errorf("%w: pokemon record missing id or name", ErrMalformed)
	}
	speed, ok := r.statByName("speed")
	if !ok {
		return models.PokemonSummary{}, fmt.Errorf("%w: pokemon %q has no speed stat", ErrMalformed, r.Name)
	}
	return models.PokemonSummary{
		ID:             r.ID,
		Name:           r.Name,
		Types:          r.typeNames(),
		ImageURL:       r.Sprites.FrontDefault,
		WeightKg:       float64(r.Weight) / 10,
		HeightM:        float64(r.Height) / 10,
		BaseExperience: r.BaseExperience,
		Speed:          speed,
	}, nil
}

// FetchSummary retrieves one pokemon by id or case-insensitive name and
// normalizes it. Exactly one request; no retries.
func (c *Client) FetchSummary(ctx context.Context, idOrName string) (models.PokemonSummary, error) {
	ref := strings.ToLower(strings.TrimSpace(idOrName))

	var raw rawPokemon
	if err := c.getJSON(ctx, c.pokemonURL(ref), &raw); err != nil {
		return models.PokemonSummary{}, err
	}
	return raw.summary()
}
