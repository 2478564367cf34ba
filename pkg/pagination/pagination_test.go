package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseDefaults(t *testing.T) {
	p := Parse(ctxWithQuery(""))
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParseOffset(t *testing.T) {
	p := Parse(ctxWithQuery("page=3&limit=25"))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestParseInvalidValues(t *testing.T) {
	p := Parse(ctxWithQuery("page=-1&limit=abc"))
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParseLimitCap(t *testing.T) {
	assert.Equal(t, MaxLimit, ParseLimit(ctxWithQuery("limit=5000"), 50))
	assert.Equal(t, 50, ParseLimit(ctxWithQuery(""), 50))
	assert.Equal(t, 50, ParseLimit(ctxWithQuery("limit=0"), 50))
}
