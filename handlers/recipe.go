package handlers

import (
	"net/http"

	"minitrack/models"
	"minitrack/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/datatypes"
)

type RecipeCreateRequest struct {
	Name          string               `json:"name"`
	MiniatureType models.MiniatureType `json:"miniature_type"`
	Steps         []string             `json:"steps"`
	PaintsUsed    []string             `json:"paints_used"`
	Techniques    []string             `json:"techniques"`
	Notes         *string              `json:"notes"`
}

func (a *API) RecipeList(c *gin.Context) {
	recipes, err := a.Store.ListRecipes(models.MiniatureType(c.Query("miniature_type")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (a *API) RecipeCreate(c *gin.Context) {
	req := RecipeCreateRequest{}
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	recipe := models.PaintingRecipe{
		Name:          req.Name,
		MiniatureType: req.MiniatureType,
		Steps:         datatypes.NewJSONSlice(req.Steps),
		PaintsUsed:    datatypes.NewJSONSlice(req.PaintsUsed),
		Techniques:    datatypes.NewJSONSlice(req.Techniques),
		Notes:         req.Notes,
	}
	if err := a.Store.CreateRecipe(&recipe); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (a *API) RecipeGet(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := a.Store.GetRecipe(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (a *API) RecipeUpdate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	update := store.RecipeUpdate{}
	if err := c.ShouldBindWith(&update, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	recipe, err := a.Store.UpdateRecipe(id, update)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (a *API) RecipeDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.Store.DeleteRecipe(id); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecipeUsage reports how many miniatures are linked to the recipe so the UI
// can warn before deletion.
func (a *API) RecipeUsage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := a.Store.RecipeUsageCount(id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "miniature_count": count})
}
