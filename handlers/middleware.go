package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
)

type debugLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w debugLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		log.Printf("[DEBUG ERROR]: %s %s, Status %d, Body: %s",
			w.gc.Request.Method, w.gc.Request.URL.Path, status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// DebugLogMiddleware doesn't work with GZIP
func DebugLogMiddleware(c *gin.Context) {
	blw := &debugLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}
