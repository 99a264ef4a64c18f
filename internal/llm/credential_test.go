package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredential(t *testing.T) {
	valid := "sk-" + strings.Repeat("a", 20)

	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"minimum length", valid, true},
		{"project key with dashes", "sk-proj-AbC_123-xyz_7890abcdEFGH", true},
		{"surrounding whitespace", "  " + valid + "\n", true},
		{"too short", "sk-" + strings.Repeat("a", 19), false},
		{"wrong prefix", "pk-" + strings.Repeat("a", 20), false},
		{"inner space", "sk-abcdefghij klmnopqrstu", false},
		{"invalid char", "sk-" + strings.Repeat("a", 20) + "!", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCredential(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrMalformedCredential)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.in), got)
		})
	}
}

func TestMaskCredential(t *testing.T) {
	assert.Equal(t, "sk-*************wxyz", MaskCredential("sk-abcdefghijklmwxyz"))
	assert.Equal(t, "*****", MaskCredential("sk-ab"))
}
