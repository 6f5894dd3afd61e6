package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) PhotoUpload(c *gin.Context) {
	miniatureID, ok := parseID(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"No photo file provided"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"Cannot read photo file"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"Cannot read photo file"})
		return
	}
	photo, err := a.Photos.Upload(miniatureID, fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (a *API) PhotoList(c *gin.Context) {
	miniatureID, ok := parseID(c, "id")
	if !ok {
		return
	}
	photos, err := a.Store.ListPhotos(miniatureID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// PhotoFetch streams the stored bytes with the recorded MIME type.
func (a *API) PhotoFetch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	photo, data, err := a.Photos.Get(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, photo.MimeType, data)
}

func (a *API) PhotoDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.Photos.Delete(id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PhotoReconcile sweeps stored files no photo row references.
func (a *API) PhotoReconcile(c *gin.Context) {
	removed, err := a.Photos.ReconcileOrphans()
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
