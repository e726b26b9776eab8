package handlers

import (
	"encoding/json"
	"net/http"

	"tripscout/favorites"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Favorites are a per-session ordered set of saved flight/hotel records,
// keyed by a content hash so a record can only be favorited once. Sessions
// are identified by the X-Session-ID header; a fresh ID is minted and echoed
// back when the client has none yet.

const sessionHeader = "X-Session-ID"

var favoritesStore = favorites.NewStore()

type favoriteAddRequest struct {
	Kind   string          `json:"kind"`
	Record json.RawMessage `json:"record"`
}

type favoriteRemoveRequest struct {
	Key string `json:"key"`
}

func sessionID(c *gin.Context) string {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(sessionHeader, id)
	return id
}

// AddFavoriteHandler serves POST /favorites/add.
func AddFavoriteHandler(c *gin.Context) {
	var req favoriteAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.Kind != "flight" && req.Kind != "hotel" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kind must be 'flight' or 'hotel'"})
		return
	}
	if len(req.Record) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Record is required"})
		return
	}

	session := sessionID(c)
	key, added := favoritesStore.Add(session, req.Kind, req.Record)

	c.JSON(http.StatusOK, gin.H{
		"key":        key,
		"added":      added,
		"session_id": session,
	})
}

// RemoveFavoriteHandler serves POST /favorites/remove.
func RemoveFavoriteHandler(c *gin.Context) {
	var req favoriteRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Key is required"})
		return
	}

	session := sessionID(c)
	removed := favoritesStore.Remove(session, req.Key)
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": true, "session_id": session})
}

// ListFavoritesHandler serves GET /favorites.
func ListFavoritesHandler(c *gin.Context) {
	session := sessionID(c)
	c.JSON(http.StatusOK, gin.H{
		"favorites":  favoritesStore.List(session),
		"session_id": session,
	})
}
