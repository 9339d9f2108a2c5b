package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"?page=-1&limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"?page=abc&limit=500", Params{Page: 1, Limit: 100, Offset: 0}},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/items"+tt.query, nil)
		assert.Equal(t, tt.want, Parse(c), tt.query)
	}
}

func TestWindow(t *testing.T) {
	start, end := New(2, 10).Window(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = New(3, 10).Window(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = New(9, 10).Window(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}
