package handlers

import (
	"net/http"

	"minitrack/models"
	"minitrack/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ProjectCreateRequest struct {
	Name        string            `json:"name"`
	GameSystem  models.GameSystem `json:"game_system"`
	Army        string            `json:"army"`
	Description *string           `json:"description"`
}

func (a *API) ProjectList(c *gin.Context) {
	projects, err := a.Store.ListProjects(models.GameSystem(c.Query("game_system")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (a *API) ProjectCreate(c *gin.Context) {
	req := ProjectCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	project := models.Project{
		Name:        req.Name,
		GameSystem:  req.GameSystem,
		Army:        req.Army,
		Description: req.Description,
	}
	if err := a.Store.CreateProject(&project); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (a *API) ProjectGet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := a.Store.GetProject(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (a *API) ProjectUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update := store.ProjectUpdate{}
	if err := c.ShouldBindWith(&update, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	project, err := a.Store.UpdateProject(id, update)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (a *API) ProjectDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.Store.DeleteProject(id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
