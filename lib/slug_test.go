package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "Plantas de Interior", "plantas-de-interior"},
		{"diacritics", "Árbol Japonés", "arbol-japones"},
		{"symbols collapse", "Pots & Planters!!", "pots-planters"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"already clean", "cactus", "cactus"},
		{"numbers", "Maceta 20cm", "maceta-20cm"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
