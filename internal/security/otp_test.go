package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoneboy/zilcycler/internal/security"
)

func TestGenerateOTPCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := security.GenerateOTPCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding every time would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1)
}
