package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	payload := map[string]interface{}{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Cooper",
		"password":   "password123",
	}
	w := performRequest(engine, "POST", "/api/users", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")

	// duplicate email rejected
	w = performRequest(engine, "POST", "/api/users", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLogout(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	register := map[string]interface{}{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Cooper",
		"password":   "password123",
	}
	w := performRequest(engine, "POST", "/api/users", "", register)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, "POST", "/api/auth/token/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decodeBody(t, w)["auth_token"].(string)
	require.NotEmpty(t, token)

	w = performRequest(engine, "GET", "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decodeBody(t, w)["username"])

	// without Redis the token stays valid after logout; it still must be a 204
	w = performRequest(engine, "POST", "/api/auth/token/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	w := performRequest(engine, "POST", "/api/auth/token/login", "", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscribeEndpoints(t *testing.T) {
	engine, db, auth := setupTestRouter(t)
	alice, aliceToken := createUserAndToken(t, db, auth, "alice")
	bob, _ := createUserAndToken(t, db, auth, "bob")

	selfURL := fmt.Sprintf("/api/users/%s/subscribe", alice.ID)
	bobURL := fmt.Sprintf("/api/users/%s/subscribe", bob.ID)

	w := performRequest(engine, "POST", selfURL, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(engine, "POST", bobURL, aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, true, body["is_subscribed"])

	w = performRequest(engine, "POST", bobURL, aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(engine, "DELETE", bobURL, aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(engine, "DELETE", bobURL, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionsListing(t *testing.T) {
	engine, db, auth := setupTestRouter(t)
	_, aliceToken := createUserAndToken(t, db, auth, "alice")
	bob, bobToken := createUserAndToken(t, db, auth, "bob")
	sugar := seedIngredient(t, db, "sugar", "g")

	for i := 0; i < 3; i++ {
		payload := recipePayload(map[string]interface{}{"id": sugar.ID, "amount": 10})
		payload["name"] = fmt.Sprintf("Recipe %d", i)
		w := performRequest(engine, "POST", "/api/recipes", bobToken, payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performRequest(engine, "POST", fmt.Sprintf("/api/users/%s/subscribe", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, "GET", "/api/users/subscriptions?recipes_limit=2", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	sub := results[0].(map[string]interface{})
	assert.Equal(t, "bob", sub["username"])
	assert.EqualValues(t, 3, sub["recipes_count"])
	assert.Len(t, sub["recipes"].([]interface{}), 2)
}
