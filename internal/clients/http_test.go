package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "vip", want: []string{"vip"}},
		{name: "trimmed", input: " vip , repeat ", want: []string{"vip", "repeat"}},
		{name: "drops_empty_entries", input: "vip,,repeat,", want: []string{"vip", "repeat"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, splitTags(test.input))
		})
	}
}
