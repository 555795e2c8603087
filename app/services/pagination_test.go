package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                string
		total               int64
		indexFrom, limit    int
		wantPage, wantPages int
		wantMore            bool
	}{
		{"first page", 30, 0, 12, 1, 3, true},
		{"middle page", 30, 12, 12, 2, 3, true},
		{"last page", 30, 24, 12, 3, 3, false},
		{"exact fit", 24, 12, 12, 2, 2, false},
		{"empty", 0, 0, 12, 1, 0, false},
		{"offset inside page", 30, 13, 12, 2, 3, true},
		{"past the end", 5, 40, 10, 5, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.indexFrom, tt.limit)
			assert.Equal(t, tt.wantPage, p.CurrentPage)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantMore, p.HasMore)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPaginateInvariants(t *testing.T) {
	for total := int64(0); total <= 40; total += 7 {
		for limit := 1; limit <= 15; limit++ {
			for indexFrom := 0; indexFrom <= 50; indexFrom += 3 {
				p := Paginate(total, indexFrom, limit)
				assert.GreaterOrEqual(t, p.CurrentPage*limit, indexFrom)
				assert.Equal(t, p.CurrentPage < p.TotalPages, p.HasMore)
			}
		}
	}
}
