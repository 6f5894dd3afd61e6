package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"minitrack/apperr"
	"minitrack/photos"
	"minitrack/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Response struct {
	Error string `json:"error"`
}

// API holds the core components the HTTP layer consumes. It only serializes
// inputs and outputs and maps error kinds onto status codes; all semantics
// live below it.
type API struct {
	DB     *gorm.DB
	Store  *store.Store
	Photos *photos.Manager
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindUnsupportedFormat, apperr.KindFileTooLarge:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the user-visible message only; internal causes stay in the log.
func (a *API) fail(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		status := statusFor(e.Kind)
		if status >= 500 || errors.Unwrap(e) != nil {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, Response{e.Message})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, Response{"Internal error"})
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"Invalid id"})
		return 0, false
	}
	return id, true
}

// Health runs a DB ping so load balancers see real readiness.
func (a *API) Health(c *gin.Context) {
	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, Response{"Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
