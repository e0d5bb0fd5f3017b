package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Simple name",
			in:   "Tomoca Coffee",
			want: "tomoca-coffee",
		},
		{
			name: "Special characters dropped",
			in:   "Mama's Kitchen & Bar!",
			want: "mama-s-kitchen-bar",
		},
		{
			name: "Collapses repeated separators",
			in:   "Addis  --  Ababa",
			want: "addis-ababa",
		},
		{
			name: "Non-latin letters survive",
			in:   "ቃተኛ ምግብ ቤት",
			want: "ቃተኛ-ምግብ-ቤት",
		},
		{
			name: "Leading and trailing junk trimmed",
			in:   "  !!Juice House!!  ",
			want: "juice-house",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
