package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) RecipeLink(c *gin.Context) {
	miniatureID, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := parseID(c, "recipeId")
	if !ok {
		return
	}
	if err := a.Store.LinkRecipe(miniatureID, recipeID); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (a *API) RecipeUnlink(c *gin.Context) {
	miniatureID, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := parseID(c, "recipeId")
	if !ok {
		return
	}
	if err := a.Store.UnlinkRecipe(miniatureID, recipeID); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) MiniatureRecipes(c *gin.Context) {
	miniatureID, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipes, err := a.Store.RecipesFor(miniatureID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}
