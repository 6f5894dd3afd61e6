package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"minitrack/models"
	"minitrack/photos"
	"minitrack/storage"
	"minitrack/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *API) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	entityStore := store.New(db)
	api := &API{
		DB:     db,
		Store:  entityStore,
		Photos: photos.NewManager(entityStore, blobs, 1024*1024),
	}

	router := gin.New()
	router.GET("/", api.Health)
	router.GET("/api/projects", api.ProjectList)
	router.POST("/api/projects", api.ProjectCreate)
	router.GET("/api/projects/:id", api.ProjectGet)
	router.PUT("/api/projects/:id", api.ProjectUpdate)
	router.DELETE("/api/projects/:id", api.ProjectDelete)
	router.POST("/api/projects/:id/miniatures", api.MiniatureCreate)
	router.POST("/api/miniatures/:id/recipes/:recipeId", api.RecipeLink)
	router.DELETE("/api/miniatures/:id/recipes/:recipeId", api.RecipeUnlink)
	router.GET("/api/miniatures/:id/recipes", api.MiniatureRecipes)
	router.POST("/api/recipes", api.RecipeCreate)
	router.GET("/api/recipes/:id/usage", api.RecipeUsage)
	router.POST("/api/miniatures/:id/photos", api.PhotoUpload)
	router.GET("/api/photos/:id", api.PhotoFetch)
	router.DELETE("/api/photos/:id", api.PhotoDelete)
	return router, api
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProjectEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/projects", gin.H{
		"name":        "Ultramarines",
		"game_system": "warhammer_40k",
		"army":        "Ultramarines",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	assert.NotZero(t, project.ID)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/projects", gin.H{
		"name":        "",
		"game_system": "warhammer_40k",
		"army":        "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/projects/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkEndpoints(t *testing.T) {
	router, api := newTestRouter(t)

	project := &models.Project{Name: "P", GameSystem: models.GameSystemWarhammer40k, Army: "A"}
	require.NoError(t, api.Store.CreateProject(project))
	miniature := &models.Miniature{ProjectID: project.ID, Name: "Captain", MiniatureType: models.MiniatureTypeCharacter}
	require.NoError(t, api.Store.CreateMiniature(miniature))
	recipe := &models.PaintingRecipe{Name: "Blue armor", MiniatureType: models.MiniatureTypeTroop}
	require.NoError(t, api.Store.CreateRecipe(recipe))

	linkPath := fmt.Sprintf("/api/miniatures/%d/recipes/%d", miniature.ID, recipe.ID)
	w := doJSON(t, router, "POST", linkPath, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	// Idempotent
	w = doJSON(t, router, "POST", linkPath, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/miniatures/%d/recipes", miniature.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []models.PaintingRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	assert.Len(t, recipes, 1)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/recipes/%d/usage", recipe.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"miniature_count":1`)

	w = doJSON(t, router, "DELETE", linkPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, "DELETE", linkPath, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/miniatures/%d/recipes/9999", miniature.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPhotoUploadEndpoint(t *testing.T) {
	router, api := newTestRouter(t)

	project := &models.Project{Name: "P", GameSystem: models.GameSystemWarhammer40k, Army: "A"}
	require.NoError(t, api.Store.CreateProject(project))
	miniature := &models.Miniature{ProjectID: project.ID, Name: "Captain", MiniatureType: models.MiniatureTypeCharacter}
	require.NoError(t, api.Store.CreateMiniature(miniature))

	payload := bytes.Repeat([]byte{0xCD}, 2048)
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="captain.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/miniatures/%d/photos", miniature.ID), &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var photo models.Photo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &photo))
	assert.Equal(t, miniature.ID, photo.MiniatureID)

	w2 := doJSON(t, router, "GET", fmt.Sprintf("/api/photos/%d", photo.ID), nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, payload, w2.Body.Bytes())
	assert.Equal(t, "image/jpeg", w2.Header().Get("Content-Type"))

	w3 := doJSON(t, router, "DELETE", fmt.Sprintf("/api/photos/%d", photo.ID), nil)
	assert.Equal(t, http.StatusNoContent, w3.Code)
	w4 := doJSON(t, router, "DELETE", fmt.Sprintf("/api/photos/%d", photo.ID), nil)
	assert.Equal(t, http.StatusNotFound, w4.Code)
}
