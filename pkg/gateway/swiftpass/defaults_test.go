package swiftpass

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(t *testing.T) *Account {
	t.Helper()
	a, err := Config{
		MerchantID: "Y",
		SubAppID:   "wx123",
		Key:        "secret",
		NotifyURL:  "https://example.com/notify",
	}.Account()
	require.NoError(t, err)
	return a
}

func TestExpand_CallerWins(t *testing.T) {
	a := testAccount(t)
	got, err := a.Expand(Params{"mch_id": "X"}, DefaultMerchantID)
	require.NoError(t, err)
	assert.Equal(t, "X", got["mch_id"])
}

func TestExpand_FillsDefaults(t *testing.T) {
	a := testAccount(t)
	got, err := a.Expand(Params{"body": "b"}, DefaultMerchantID, DefaultSubAppID, DefaultNotifyURL, DefaultOperatorID, DefaultNonce)
	require.NoError(t, err)

	assert.Equal(t, "Y", got["mch_id"])
	assert.Equal(t, "wx123", got["sub_appid"])
	assert.Equal(t, "https://example.com/notify", got["notify_url"])
	assert.Equal(t, "Y", got["op_user_id"])
	assert.Equal(t, "b", got["body"])
	assert.Len(t, got["nonce_str"], NonceLength)
}

func TestExpand_SkipsEmptyDefaults(t *testing.T) {
	a := testAccount(t)
	got, err := a.Expand(nil, DefaultSubMerchantID)
	require.NoError(t, err)
	assert.NotContains(t, got, "sub_mch_id")
}

func TestExpand_OnlyWhitelisted(t *testing.T) {
	a := testAccount(t)
	got, err := a.Expand(Params{}, DefaultMerchantID)
	require.NoError(t, err)
	assert.Equal(t, Params{"mch_id": "Y"}, got)
}

func TestExpand_DoesNotMutateInput(t *testing.T) {
	a := testAccount(t)
	in := Params{"body": "b"}
	_, err := a.Expand(in, DefaultMerchantID)
	require.NoError(t, err)
	assert.Equal(t, Params{"body": "b"}, in)
}

func TestNonceStr(t *testing.T) {
	re := regexp.MustCompile(`^[A-Za-z0-9]+$`)

	n, err := NonceStr(0)
	require.NoError(t, err)
	assert.Len(t, n, NonceLength)
	assert.Regexp(t, re, n)

	short, err := NonceStr(8)
	require.NoError(t, err)
	assert.Len(t, short, 8)

	other, err := NonceStr(0)
	require.NoError(t, err)
	assert.NotEqual(t, n, other)
}

func TestExpand_FreshNoncePerCall(t *testing.T) {
	a := testAccount(t)
	first, err := a.Expand(nil, DefaultNonce)
	require.NoError(t, err)
	second, err := a.Expand(nil, DefaultNonce)
	require.NoError(t, err)
	assert.NotEqual(t, first["nonce_str"], second["nonce_str"])
}
