package gcpsecret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "projects/p/secrets/s/versions/3", Name("p", "s", "3"))
	assert.Equal(t, "projects/p/secrets/s/versions/latest", Name("p", "s", ""))
}
