package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pokehub/internal/pokeapi"
)

// Handler serves the catalog over HTTP: the filtered/paginated list from
// the in-memory store, and on-demand detail aggregation through the
// upstream client. Details are never cached; every request re-aggregates.
type Handler struct {
	Store  *Store
	Client *pokeapi.Client

	pageSize int
}

func NewHandler(store *Store, client *pokeapi.Client, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Handler{Store: store, Client: client, pageSize: pageSize}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)         // GET /pokemon
	rg.GET("/:name", h.detail) // GET /pokemon/:name
}

func (h *Handler) list(c *gin.Context) {
	collection, ready := h.Store.Snapshot()
	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog not loaded yet"})
		return
	}

	state, err := stateFromQuery(c, h.pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := Filter(collection, state)
	page := pageSlice(filtered, state.Page, state.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"total":     len(collection),
		"filtered":  len(filtered),
		"page":      state.Page,
		"page_size": state.PageSize,
		"items":     page,
	})
}

func (h *Handler) detail(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	d, err := h.Client.FetchDetail(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		logrus.WithError(err).Errorf("[catalog] detail aggregation failed for %q", name)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream fetch failed"})
		return
	}

	c.JSON(http.StatusOK, d)
}

// ListGenerations serves the fixed bucket table.
func ListGenerations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"generations": Generations})
}

// stateFromQuery builds a FilterState from query params. Page is applied
// last so the filter transitions' page resets cannot clobber an explicit
// page request.
func stateFromQuery(c *gin.Context, pageSize int) (FilterState, error) {
	state := NewFilterState(pageSize)

	if gen := c.Query("generation"); gen != "" {
		if _, ok := GenerationByName(gen); !ok {
			return state, errors.New("unknown generation: " + gen)
		}
		state = state.WithGeneration(gen)
	}
	if t := c.Query("type"); t != "" {
		state = state.WithType(strings.ToLower(t))
	}

	ranges := []struct {
		min, max string
		apply    func(FilterState, Range) FilterState
	}{
		{"min_weight", "max_weight", FilterState.WithWeightRange},
		{"min_height", "max_height", FilterState.WithHeightRange},
		{"min_base_exp", "max_base_exp", FilterState.WithBaseExperienceRange},
		{"min_speed", "max_speed", FilterState.WithSpeedRange},
	}
	for _, rq := range ranges {
		r, set, err := rangeFromQuery(c, rq.min, rq.max)
		if err != nil {
			return state, err
		}
		if set {
			state = rq.apply(state, r)
		}
	}

	if p := c.Query("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil || page < 0 {
			return state, errors.New("invalid page: " + p)
		}
		state = state.WithPage(page)
	}
	return state, nil
}

func rangeFromQuery(c *gin.Context, minKey, maxKey string) (Range, bool, error) {
	r := permissive
	set := false

	if v := c.Query(minKey); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return r, false, errors.New("invalid " + minKey + ": " + v)
		}
		r.Min = f
		set = true
	}
	if v := c.Query(maxKey); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return r, false, errors.New("invalid " + maxKey + ": " + v)
		}
		r.Max = f
		set = true
	}
	return r, set, nil
}
