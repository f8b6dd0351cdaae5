package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(url string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPaginationDefaults(t *testing.T) {
	page, limit := pagination(testContext("/x"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestPaginationExplicit(t *testing.T) {
	page, limit := pagination(testContext("/x?page=3&limit=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)
}

func TestPaginationClampsBadValues(t *testing.T) {
	page, limit := pagination(testContext("/x?page=0&limit=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = pagination(testContext("/x?page=abc&limit=-2"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestPageWindowOffset(t *testing.T) {
	limit, offset := pageWindow(testContext("/x?limit=10&offset=10"))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)
}

func TestPageWindowFallsBackToPage(t *testing.T) {
	limit, offset := pageWindow(testContext("/x?page=3&limit=10"))
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	limit, offset = pageWindow(testContext("/x"))
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}

func TestPageWindowOffsetWins(t *testing.T) {
	_, offset := pageWindow(testContext("/x?page=5&limit=10&offset=30"))
	assert.Equal(t, 30, offset)
}

func TestCurrentUserID(t *testing.T) {
	c := testContext("/x")
	id := uuid.New()
	c.Set("user_id", id.String())

	got, ok := currentUserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestCurrentUserIDMissing(t *testing.T) {
	c := testContext("/x")

	_, ok := currentUserID(c)
	assert.False(t, ok)
	assert.Equal(t, 401, c.Writer.Status())
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)))
	assert.False(t, isDuplicateKey(errors.New("connection refused")))
	assert.False(t, isDuplicateKey(nil))
}
