package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductSlug(t *testing.T) {
	tests := []struct {
		title string
		id    uint
		want  string
	}{
		{"Red T-Shirt!!", 42, "red-t-shirt-42"},
		{"  Summer   Linen Shirt ", 7, "summer-linen-shirt-7"},
		{"Café au lait", 3, "caf-au-lait-3"},
		{"100% Cotton_Tee", 9, "100-cotton_tee-9"},
		{"!!!", 5, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductSlug(tt.title, tt.id))
		})
	}
}

func TestProductSlugIsDeterministic(t *testing.T) {
	first := ProductSlug("Red T-Shirt!!", 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ProductSlug("Red T-Shirt!!", 42))
	}
	assert.NotEqual(t, ProductSlug("Red T-Shirt!!", 42), ProductSlug("Red T-Shirt!!", 43))
}

func TestPendingSlug(t *testing.T) {
	a, b := PendingSlug(), PendingSlug()
	assert.True(t, strings.HasPrefix(a, PendingSlugPrefix))
	assert.NotEqual(t, a, b)
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "summer-sale-2024", GenerateSlug("  Summer Sale: 2024! "))
	assert.Equal(t, "", GenerateSlug("***"))
}
