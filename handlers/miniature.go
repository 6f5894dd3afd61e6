package handlers

import (
	"net/http"

	"minitrack/models"
	"minitrack/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MiniatureCreateRequest struct {
	Name          string               `json:"name"`
	MiniatureType models.MiniatureType `json:"miniature_type"`
	Notes         *string              `json:"notes"`
}

func (a *API) MiniatureList(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	miniatures, err := a.Store.ListMiniatures(projectID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, miniatures)
}

func (a *API) MiniatureCreate(c *gin.Context) {
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	req := MiniatureCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	miniature := models.Miniature{
		ProjectID:     projectID,
		Name:          req.Name,
		MiniatureType: req.MiniatureType,
		Notes:         req.Notes,
		// New miniatures start unpainted
		ProgressStatus: models.ProgressUnpainted,
	}
	if err := a.Store.CreateMiniature(&miniature); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, miniature)
}

func (a *API) MiniatureGet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	miniature, err := a.Store.GetMiniature(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, miniature)
}

func (a *API) MiniatureUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update := store.MiniatureUpdate{}
	if err := c.ShouldBindWith(&update, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	miniature, err := a.Store.UpdateMiniature(id, update)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, miniature)
}

func (a *API) MiniatureDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.Store.DeleteMiniature(id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
