package models

// PokemonSummary is the normalized, internal form of one catalog entry.
//
// Every field is derived from a single upstream pokemon record: raw weight
// and height are decigram/decimeter integers and are divided by 10 here,
// speed is looked up by stat name rather than list position.
type PokemonSummary struct {
	ID             int      `json:"id"`              // upstream id, the universal sort/range key
	Name           string   `json:"name"`            // lowercase canonical name
	Types          []string `json:"types"`           // 1-2 type names in upstream order
	ImageURL       string   `json:"image_url"`       // front sprite
	WeightKg       float64  `json:"weight_kg"`       // raw weight / 10
	HeightM        float64  `json:"height_m"`        // raw height / 10
	BaseExperience int      `json:"base_experience"` // raw value, no conversion
	Speed          int      `json:"speed"`           // base stat "speed"
}

// Ability pairs an ability name with its hidden flag from the pokemon
// record and the English flavor text from the ability record. Description
// is empty when the ability has no English entry.
type Ability struct {
	Name        string `json:"name"`
	IsHidden    bool   `json:"is_hidden"`
	Description string `json:"description,omitempty"`
}

// EvolutionStage is one stage of an evolution chain, root first.
type EvolutionStage struct {
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url"`
	Types    []string `json:"types"`
}

// PokemonDetail is the denormalized detail view assembled from the pokemon
// record plus its species, evolution chain, ability and type records.
//
// Weaknesses is deduplicated across all of the pokemon's own types.
// EvolutionChain follows only the first branch at each fork.
type PokemonDetail struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	BaseExperience  int              `json:"base_experience"`
	WeightKg        float64          `json:"weight_kg"`
	HeightM         float64          `json:"height_m"`
	Types           []string         `json:"types"`
	ImageURL        string           `json:"image_url"`
	Abilities       []Ability        `json:"abilities"`
	Stats           map[string]int   `json:"stats"` // hp, attack, defense, special-attack, special-defense, speed
	EvolutionChain  []EvolutionStage `json:"evolution_chain"`
	Weaknesses      []string         `json:"weaknesses"`
	History         string           `json:"history,omitempty"`          // English flavor text
	FirstAppearance string           `json:"first_appearance,omitempty"` // generation name
	Category        string           `json:"category,omitempty"`         // English genus
	Color           string           `json:"color,omitempty"`
}
