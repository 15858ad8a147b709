package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIngredientsNameFilter(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	seedIngredient(t, db, "salt", "g")
	seedIngredient(t, db, "salmon", "g")
	seedIngredient(t, db, "milk", "ml")

	w := performRequest(engine, "GET", "/api/ingredients?name=sal", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	names := []string{items[0]["name"].(string), items[1]["name"].(string)}
	assert.ElementsMatch(t, []string{"salt", "salmon"}, names)

	// prefix match only, no substring hits
	w = performRequest(engine, "GET", "/api/ingredients?name=alm", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestGetIngredient(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	sugar := seedIngredient(t, db, "sugar", "g")

	w := performRequest(engine, "GET", fmt.Sprintf("/api/ingredients/%s", sugar.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sugar", body["name"])
	assert.Equal(t, "g", body["measurement_unit"])
}

func TestListTags(t *testing.T) {
	engine, db, _ := setupTestRouter(t)
	seedTag(t, db, "breakfast")
	seedTag(t, db, "dinner")

	w := performRequest(engine, "GET", "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	assert.Len(t, tags, 2)
}

func TestGetTagNotFound(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := performRequest(engine, "GET", "/api/tags/3f9f5a6e-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
