package swiftpass

import (
	"crypto/rand"
	"math/big"
)

// DefaultKey names a field the account can fill in when the caller leaves it out.
type DefaultKey string

const (
	DefaultSubAppID      DefaultKey = "sub_appid"
	DefaultMerchantID    DefaultKey = "mch_id"
	DefaultSubMerchantID DefaultKey = "sub_mch_id"
	DefaultNonce         DefaultKey = "nonce_str"
	DefaultNotifyURL     DefaultKey = "notify_url"
	DefaultOperatorID    DefaultKey = "op_user_id"
)

const (
	nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	NonceLength   = 32
)

// NonceStr returns a random alphanumeric string of length n, or NonceLength
// when n is not positive.
func NonceStr(n int) (string, error) {
	if n <= 0 {
		n = NonceLength
	}
	max := big.NewInt(int64(len(nonceAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = nonceAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

func (a *Account) defaultFor(key DefaultKey) (string, error) {
	switch key {
	case DefaultSubAppID:
		return a.subAppID, nil
	case DefaultMerchantID:
		return a.merchantID, nil
	case DefaultSubMerchantID:
		return a.subMerchantID, nil
	case DefaultNonce:
		return NonceStr(NonceLength)
	case DefaultNotifyURL:
		return a.notifyURL, nil
	case DefaultOperatorID:
		return a.operatorUserID, nil
	}
	return "", nil
}

// Expand returns a new Params holding the account defaults for keys with
// params laid over them. Caller values always win.
func (a *Account) Expand(params Params, keys ...DefaultKey) (Params, error) {
	out := make(Params, len(params)+len(keys))
	for _, key := range keys {
		v, err := a.defaultFor(key)
		if err != nil {
			return nil, &Error{Kind: KindConfig, Message: "generate " + string(key), Err: err}
		}
		if v != "" {
			out[string(key)] = v
		}
	}
	for k, v := range params {
		out[k] = v
	}
	return out, nil
}
