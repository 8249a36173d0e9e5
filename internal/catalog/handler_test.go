package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokehub/internal/pokeapi"
	"pokehub/pkg/models"
)

func newTestRouter(store *Store, client *pokeapi.Client, pageSize int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(store, client, pageSize)
	h.RegisterRoutes(router.Group("/pokemon"))
	router.GET("/generations", ListGenerations)
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type listBody struct {
	Total    int                     `json:"total"`
	Filtered int                     `json:"filtered"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Items    []models.PokemonSummary `json:"items"`
}

func TestListUnavailableBeforeLoad(t *testing.T) {
	router := newTestRouter(NewStore(), nil, 20)

	rec := doGet(t, router, "/pokemon")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListFiltersAndPages(t *testing.T) {
	store := NewStore()
	store.Replace(sampleCollection())
	router := newTestRouter(store, nil, 20)

	rec := doGet(t, router, "/pokemon?type=fire")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Total)
	assert.Equal(t, 2, body.Filtered)
	require.Len(t, body.Items, 2)
	for _, p := range body.Items {
		assert.Contains(t, p.Types, "fire")
	}
}

func TestListCombinedQuery(t *testing.T) {
	store := NewStore()
	store.Replace(sampleCollection())
	router := newTestRouter(store, nil, 20)

	rec := doGet(t, router, "/pokemon?generation=1&max_weight=10&min_speed=60")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, p := range body.Items {
		assert.LessOrEqual(t, p.ID, 151)
		assert.LessOrEqual(t, p.WeightKg, 10.0)
		assert.GreaterOrEqual(t, p.Speed, 60)
	}
}

func TestListPaging(t *testing.T) {
	store := NewStore()
	store.Replace(sampleCollection())
	router := newTestRouter(store, nil, 3)

	rec := doGet(t, router, "/pokemon?page=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 3, body.PageSize)
	require.Len(t, body.Items, 3)
	assert.Equal(t, 25, body.Items[0].ID) // items 4-6 of the collection

	rec = doGet(t, router, "/pokemon?page=50")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}

func TestListRejectsBadQuery(t *testing.T) {
	store := NewStore()
	store.Replace(sampleCollection())
	router := newTestRouter(store, nil, 20)

	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/pokemon?generation=99").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/pokemon?min_weight=abc").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/pokemon?page=-1").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, router, "/pokemon?page=x").Code)
}

func TestDetailNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	client := pokeapi.NewClient(upstream.URL, time.Second)
	store := NewStore()
	store.Replace(sampleCollection())
	router := newTestRouter(store, client, 20)

	rec := doGet(t, router, "/pokemon/missingno")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDetailUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := pokeapi.NewClient(upstream.URL, time.Second)
	router := newTestRouter(NewStore(), client, 20)

	rec := doGet(t, router, "/pokemon/anything")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerationsEndpoint(t *testing.T) {
	router := newTestRouter(NewStore(), nil, 20)

	rec := doGet(t, router, "/generations")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Generations []Generation `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Generations, 8)
	assert.Equal(t, 1, body.Generations[0].First)
	assert.Equal(t, 1025, body.Generations[7].Last)
}
