package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"in range", 3, 25, 3, 25},
		{"zero page becomes first", 0, 25, 1, 25},
		{"negative page becomes first", -5, 25, 1, 25},
		{"zero limit gets default", 2, 0, 2, defaultPageLimit},
		{"negative limit gets default", 2, -1, 2, defaultPageLimit},
		{"oversized limit clamped to max", 2, 5000, 2, maxPageLimit},
		{"limit at max stays", 2, maxPageLimit, 2, maxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePaging(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
