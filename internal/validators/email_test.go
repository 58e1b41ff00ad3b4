package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomain(t *testing.T) {
	d, ok := EmailDomain("Ana@Barbearia.COM.br")
	assert.True(t, ok)
	assert.Equal(t, "barbearia.com.br", d)

	for _, bad := range []string{"sem-arroba", "ana@", "@barbearia.com"} {
		_, ok := EmailDomain(bad)
		assert.False(t, ok, bad)
		assert.False(t, IsEmailDomainValid(bad), bad)
	}
}
