package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nora-sch/s-r-portfolio/apperror"
)

// listRequest builds a request with an optional page URL param and query string.
func listRequest(t *testing.T, page, query string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/blog"+query, nil)
	rctx := chi.NewRouteContext()
	if page != "" {
		rctx.URLParams.Add("page", page)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListParams(t *testing.T) {
	t.Parallel()

	t.Run("absent page defaults to first", func(t *testing.T) {
		page, limit, err := listParams(listRequest(t, "", ""))
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, 0, limit)
	})

	t.Run("page and limit parsed", func(t *testing.T) {
		page, limit, err := listParams(listRequest(t, "3", "?limit=25"))
		require.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 25, limit)
	})

	t.Run("non-numeric page rejected", func(t *testing.T) {
		_, _, err := listParams(listRequest(t, "abc", ""))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	})

	t.Run("non-numeric limit rejected", func(t *testing.T) {
		_, _, err := listParams(listRequest(t, "1", "?limit=lots"))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	})

	t.Run("out-of-range values pass through for clamping", func(t *testing.T) {
		page, limit, err := listParams(listRequest(t, "-2", "?limit=5000"))
		require.NoError(t, err)
		assert.Equal(t, -2, page)
		assert.Equal(t, 5000, limit)
	})
}
