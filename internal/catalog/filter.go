package catalog

import (
	"math"
	"slices"

	"pokehub/pkg/models"
)

// DefaultPageSize matches the original grid: 20 cards per page.
const DefaultPageSize = 20

// Generation is a named contiguous id range used for coarse filtering.
type Generation struct {
	Name  string `json:"name"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

// Generations is the fixed bucket table over the id space, in order.
var Generations = []Generation{
	{Name: "1", First: 1, Last: 151},
	{Name: "2", First: 152, Last: 251},
	{Name: "3", First: 252, Last: 386},
	{Name: "4", First: 387, Last: 493},
	{Name: "5", First: 494, Last: 649},
	{Name: "6", First: 650, Last: 721},
	{Name: "7", First: 722, Last: 809},
	{Name: "8", First: 810, Last: 1025},
}

// GenerationByName returns the bucket for a name like "3".
func GenerationByName(name string) (Generation, bool) {
	for _, g := range Generations {
		if g.Name == name {
			return g, true
		}
	}
	return Generation{}, false
}

// Range is an inclusive numeric bound pair.
type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var permissive = Range{Min: 0, Max: math.MaxFloat64}

// FilterState is the full, immutable filter + page configuration. States
// are transitioned with the With* methods; every filter change returns a
// state with the page reset to 0, so a stale page index can never survive
// a filter change.
type FilterState struct {
	Generation     string // bucket name, "" = no constraint
	Type           string // required type name, "" = no constraint
	Weight         Range
	Height         Range
	BaseExperience Range
	Speed          Range
	Page           int // zero-based
	PageSize       int
}

// NewFilterState returns the unconstrained state on page 0.
func NewFilterState(pageSize int) FilterState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterState{
		Weight:         permissive,
		Height:         permissive,
		BaseExperience: permissive,
		Speed:          permissive,
		PageSize:       pageSize,
	}
}

func (s FilterState) WithGeneration(name string) FilterState {
	s.Generation = name
	s.Page = 0
	return s
}

func (s FilterState) WithType(name string) FilterState {
	s.Type = name
	s.Page = 0
	return s
}

func (s FilterState) WithWeightRange(r Range) FilterState {
	s.Weight = r
	s.Page = 0
	return s
}

func (s FilterState) WithHeightRange(r Range) FilterState {
	s.Height = r
	s.Page = 0
	return s
}

func (s FilterState) WithBaseExperienceRange(r Range) FilterState {
	s.BaseExperience = r
	s.Page = 0
	return s
}

func (s FilterState) WithSpeedRange(r Range) FilterState {
	s.Speed = r
	s.Page = 0
	return s
}

// WithPage moves to another page of the same filtered view.
func (s FilterState) WithPage(page int) FilterState {
	if page < 0 {
		page = 0
	}
	s.Page = page
	return s
}

// matches reports whether p satisfies every active predicate. An unknown
// generation name matches nothing; handlers reject those before they get
// here.
func (s FilterState) matches(p models.PokemonSummary) bool {
	if s.Generation != "" {
		g, ok := GenerationByName(s.Generation)
		if !ok || p.ID < g.First || p.ID > g.Last {
			return false
		}
	}
	if s.Type != "" && !slices.Contains(p.Types, s.Type) {
		return false
	}
	return s.Weight.contains(p.WeightKg) &&
		s.Height.contains(p.HeightM) &&
		s.BaseExperience.contains(float64(p.BaseExperience)) &&
		s.Speed.contains(float64(p.Speed))
}

// Filter returns the subsequence of collection satisfying every active
// predicate, preserving collection order. Pure function.
func Filter(collection []models.PokemonSummary, s FilterState) []models.PokemonSummary {
	out := make([]models.PokemonSummary, 0, len(collection))
	for _, p := range collection {
		if s.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// VisiblePage filters the collection and returns the state's page slice,
// clipped to bounds (empty past the last page). Pure function.
func VisiblePage(collection []models.PokemonSummary, s FilterState) []models.PokemonSummary {
	return pageSlice(Filter(collection, s), s.Page, s.PageSize)
}

func pageSlice(filtered []models.PokemonSummary, page, pageSize int) []models.PokemonSummary {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := page * pageSize
	if page < 0 || start >= len(filtered) {
		return nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
