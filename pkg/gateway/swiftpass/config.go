package swiftpass

import (
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultGatewayURL = "https://pay.swiftpass.cn/pay/gateway"
	DefaultBillURL    = "https://download.swiftpass.cn/gateway"
	DefaultTimeout    = 30 * time.Second
)

// Config is the merchant configuration as it is stored in the config secret.
type Config struct {
	MerchantID     string        `mapstructure:"merchantId"`
	SubMerchantID  string        `mapstructure:"subMerchantId"`
	SubAppID       string        `mapstructure:"subAppId"`
	Key            string        `mapstructure:"key"`
	NotifyURL      string        `mapstructure:"notifyUrl"`
	OperatorUserID string        `mapstructure:"operatorUserId"`
	SignType       string        `mapstructure:"signType"`
	GatewayURL     string        `mapstructure:"gatewayUrl"`
	BillURL        string        `mapstructure:"billUrl"`
	Timeout        time.Duration `mapstructure:"timeout"`
	// PFX is the base64 encoded PKCS#12 client certificate bundle.
	PFX        string `mapstructure:"pfx"`
	Passphrase string `mapstructure:"passphrase"`
}

// Account is the validated, read-only form of Config shared by every call.
type Account struct {
	merchantID     string
	subMerchantID  string
	subAppID       string
	key            string
	notifyURL      string
	operatorUserID string
	algorithm      Algorithm
	gatewayURL     string
	billURL        string
	timeout        time.Duration
	pfx            []byte
	passphrase     string
}

// Account validates the config and fills in the defaults.
func (c Config) Account() (*Account, error) {
	if c.MerchantID == "" {
		return nil, newError(KindConfig, "merchant id is required")
	}
	if c.Key == "" {
		return nil, newError(KindConfig, "signing key is required")
	}

	alg, err := ParseAlgorithm(c.SignType)
	if err != nil {
		return nil, err
	}

	a := &Account{
		merchantID:     c.MerchantID,
		subMerchantID:  c.SubMerchantID,
		subAppID:       c.SubAppID,
		key:            c.Key,
		notifyURL:      c.NotifyURL,
		operatorUserID: c.OperatorUserID,
		algorithm:      alg,
		gatewayURL:     c.GatewayURL,
		billURL:        c.BillURL,
		timeout:        c.Timeout,
		passphrase:     c.Passphrase,
	}
	if a.operatorUserID == "" {
		a.operatorUserID = a.merchantID
	}
	if a.passphrase == "" {
		a.passphrase = a.merchantID
	}
	if a.gatewayURL == "" {
		a.gatewayURL = DefaultGatewayURL
	}
	if a.billURL == "" {
		a.billURL = DefaultBillURL
	}
	if a.timeout <= 0 {
		a.timeout = DefaultTimeout
	}
	if c.PFX != "" {
		pfx, err := base64.StdEncoding.DecodeString(c.PFX)
		if err != nil {
			return nil, &Error{Kind: KindConfig, Message: "pfx is not valid base64", Err: errors.WithStack(err)}
		}
		a.pfx = pfx
	}
	return a, nil
}

func (a *Account) MerchantID() string   { return a.merchantID }
func (a *Account) Algorithm() Algorithm { return a.algorithm }
func (a *Account) GatewayURL() string   { return a.gatewayURL }
func (a *Account) BillURL() string      { return a.billURL }
func (a *Account) Timeout() time.Duration {
	return a.timeout
}

// HasCertificate reports whether a client certificate bundle is configured.
func (a *Account) HasCertificate() bool { return len(a.pfx) > 0 }
