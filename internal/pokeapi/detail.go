package pokeapi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"pokehub/pkg/models"
)

// Upstream chains top out at three or four stages; the cap only guards
// against a pathological payload.
const maxEvolutionDepth = 12

var trailingID = regexp.MustCompile(`/(\d+)/?$`)

// idFromURL extracts the numeric suffix of a resource URL, e.g.
// ".../pokemon-species/25/" -> "25".
func idFromURL(url string) (string, error) {
	m := trailingID.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: no numeric id in url %q", ErrMalformed, url)
	}
	return m[1], nil
}

// localized is one language-tagged text entry; the upstream uses the same
// shape for species flavor text, genera and ability flavor text.
type localized struct {
	Text     string // set by the concrete containers below
	Language string
}

type rawSpecies struct {
	FlavorTextEntries []struct {
		FlavorText string   `json:"flavor_text"`
		Language   namedRef `json:"language"`
	} `json:"flavor_text_entries"`
	Genera []struct {
		Genus    string   `json:"genus"`
		Language namedRef `json:"language"`
	} `json:"genera"`
	Generation     namedRef `json:"generation"`
	Color          namedRef `json:"color"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

type chainNode struct {
	Species   namedRef    `json:"species"`
	EvolvesTo []chainNode `json:"evolves_to"`
}

type rawEvolutionChain struct {
	Chain chainNode `json:"chain"`
}

type rawAbility struct {
	FlavorTextEntries []struct {
		FlavorText string   `json:"flavor_text"`
		Language   namedRef `json:"language"`
	} `json:"flavor_text_entries"`
}

type rawType struct {
	DamageRelations struct {
		DoubleDamageFrom []namedRef `json:"double_damage_from"`
	} `json:"damage_relations"`
}

// pickEnglish returns the first entry tagged "en", or "" when no English
// entry exists. A missing translation is a gap, not a failure.
func pickEnglish(entries []localized) string {
	for _, e := range entries {
		if e.Language == "en" {
			return strings.TrimSpace(e.Text)
		}
	}
	return ""
}

// FetchDetail aggregates the full detail view for one pokemon.
//
// The pipeline is: pokemon -> species -> evolution chain -> per-stage
// pokemon records (strictly sequential, each step needs the previous
// result), then ability and type records concurrently, then assembly once
// everything has landed. Any sub-fetch failure aborts the whole
// aggregation; there is no partial detail.
func (c *Client) FetchDetail(ctx context.Context, name string) (*models.PokemonDetail, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var raw rawPokemon
	if err := c.getJSON(ctx, c.pokemonURL(name), &raw); err != nil {
		return nil, err
	}
	if raw.Species.URL == "" {
		return nil, fmt.Errorf("%w: pokemon %q has no species reference", ErrMalformed, name)
	}
	if _, ok := raw.statByName("speed"); !ok {
		return nil, fmt.Errorf("%w: pokemon %q has no speed stat", ErrMalformed, raw.Name)
	}

	var species rawSpecies
	if err := c.getJSON(ctx, raw.Species.URL, &species); err != nil {
		return nil, err
	}
	if species.EvolutionChain.URL == "" {
		return nil, fmt.Errorf("%w: species of %q has no evolution chain reference", ErrMalformed, name)
	}

	var chainDoc rawEvolutionChain
	if err := c.getJSON(ctx, species.EvolutionChain.URL, &chainDoc); err != nil {
		return nil, err
	}

	chain, err := c.walkChain(ctx, chainDoc.Chain)
	if err != nil {
		return nil, err
	}

	abilities, weaknesses, err := c.fetchAbilitiesAndWeaknesses(ctx, &raw)
	if err != nil {
		return nil, err
	}

	return &models.PokemonDetail{
		ID:              raw.ID,
		Name:            raw.Name,
		BaseExperience:  raw.BaseExperience,
		WeightKg:        float64(raw.Weight) / 10,
		HeightM:         float64(raw.Height) / 10,
		Types:           raw.typeNames(),
		ImageURL:        raw.Sprites.FrontDefault,
		Abilities:       abilities,
		Stats:           raw.statBlock(),
		EvolutionChain:  chain,
		Weaknesses:      weaknesses,
		History:         pickEnglish(speciesFlavor(&species)),
		FirstAppearance: species.Generation.Name,
		Category:        pickEnglish(speciesGenera(&species)),
		Color:           species.Color.Name,
	}, nil
}

// walkChain follows the evolution graph root-first, fetching each stage's
// pokemon record for its sprite and types. At a fork only the first listed
// branch is followed; alternates are never visited.
func (c *Client) walkChain(ctx context.Context, root chainNode) ([]models.EvolutionStage, error) {
	var stages []models.EvolutionStage

	node := &root
	for depth := 0; depth < maxEvolutionDepth; depth++ {
		id, err := idFromURL(node.Species.URL)
		if err != nil {
			return nil, err
		}

		var stage rawPokemon
		if err := c.getJSON(ctx, c.pokemonURL(id), &stage); err != nil {
			return nil, err
		}

		stages = append(stages, models.EvolutionStage{
			Name:     node.Species.Name,
			ImageURL: stage.Sprites.FrontDefault,
			Types:    stage.typeNames(),
		})

		if len(node.EvolvesTo) == 0 {
			break
		}
		node = &node.EvolvesTo[0]
	}
	return stages, nil
}

// fetchAbilitiesAndWeaknesses runs the order-independent fetches: one
// ability record per ability reference and one type record per type, all
// concurrently under a single group. Ability output order follows the
// pokemon record (indexed reassembly); weakness lists are flattened and
// deduplicated after the join. The first error cancels every outstanding
// request.
func (c *Client) fetchAbilitiesAndWeaknesses(ctx context.Context, raw *rawPokemon) ([]models.Ability, []string, error) {
	abilities := make([]models.Ability, len(raw.Abilities))
	weaknessLists := make([][]string, len(raw.Types))

	g, gctx := errgroup.WithContext(ctx)

	for i, ab := range raw.Abilities {
		i, ab := i, ab
		g.Go(func() error {
			var detail rawAbility
			if err := c.getJSON(gctx, ab.Ability.URL, &detail); err != nil {
				return err
			}
			abilities[i] = models.Ability{
				Name:        ab.Ability.Name,
				IsHidden:    ab.IsHidden,
				Description: pickEnglish(abilityFlavor(&detail)),
			}
			return nil
		})
	}

	for i, t := range raw.Types {
		i, t := i, t
		g.Go(func() error {
			var detail rawType
			if err := c.getJSON(gctx, t.Type.URL, &detail); err != nil {
				return err
			}
			names := make([]string, 0, len(detail.DamageRelations.DoubleDamageFrom))
			for _, from := range detail.DamageRelations.DoubleDamageFrom {
				names = append(names, from.Name)
			}
			weaknessLists[i] = names
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return abilities, lo.Uniq(lo.Flatten(weaknessLists)), nil
}

func speciesFlavor(s *rawSpecies) []localized {
	out := make([]localized, 0, len(s.FlavorTextEntries))
	for _, e := range s.FlavorTextEntries {
		out = append(out, localized{Text: e.FlavorText, Language: e.Language.Name})
	}
	return out
}

func speciesGenera(s *rawSpecies) []localized {
	out := make([]localized, 0, len(s.Genera))
	for _, e := range s.Genera {
		out = append(out, localized{Text: e.Genus, Language: e.Language.Name})
	}
	return out
}

func abilityFlavor(a *rawAbility) []localized {
	out := make([]localized, 0, len(a.FlavorTextEntries))
	for _, e := range a.FlavorTextEntries {
		out = append(out, localized{Text: e.FlavorText, Language: e.Language.Name})
	}
	return out
}
