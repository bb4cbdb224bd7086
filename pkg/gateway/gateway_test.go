package gateway

import (
	"testing"

	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSwiftPassProvider(t *testing.T) {
	p, err := NewSwiftPassProvider(swiftpass.Config{MerchantID: "7551000001", Key: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, p)

	p, err = NewSwiftPassProvider(swiftpass.Config{})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestProvider_Validate(t *testing.T) {
	p, err := NewSwiftPassProvider(swiftpass.Config{MerchantID: "7551000001", Key: "secret"})
	require.NoError(t, err)

	assert.NoError(t, p.Validate(swiftpass.OpQueryOrder, swiftpass.Params{"out_trade_no": "o"}))
	assert.True(t, swiftpass.IsKind(p.Validate(swiftpass.OpQueryOrder, swiftpass.Params{}), swiftpass.KindValidation))
}
