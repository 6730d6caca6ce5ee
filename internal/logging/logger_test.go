package logging_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photo-studio-backend/internal/logging"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.NewWithWriter(&buf, "production", "")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = logging.NewWithWriter(&buf, "production", "warn")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = logging.NewWithWriter(&buf, "development", "")
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestMiddleware_LogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "production", "info")

	router := gin.New()
	router.Use(logging.Middleware(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})

	req, _ := http.NewRequest("GET", "/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
}
