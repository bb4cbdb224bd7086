package swiftpass

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pkcs12"
)

// Transport posts an encoded request and returns the raw response body.
// secure asks for the client certificate connection.
type Transport interface {
	Post(ctx context.Context, url string, body []byte, secure bool) ([]byte, error)
}

// HTTPTransport sends requests with net/http. The certificate client is only
// available when the account carries a PKCS#12 bundle.
type HTTPTransport struct {
	plain  *http.Client
	secure *http.Client
}

// NewHTTPTransport builds the plain client and, when the account has a
// certificate bundle, the client certificate one.
func NewHTTPTransport(account *Account) (*HTTPTransport, error) {
	t := &HTTPTransport{
		plain: &http.Client{Timeout: account.Timeout()},
	}
	if !account.HasCertificate() {
		return t, nil
	}

	cert, err := loadPKCS12(account.pfx, account.passphrase)
	if err != nil {
		return nil, &Error{Kind: KindConfig, Message: "load client certificate", Err: err}
	}
	t.secure = &http.Client{
		Timeout: account.Timeout(),
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
		},
	}
	return t, nil
}

func loadPKCS12(pfx []byte, passphrase string) (tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(pfx, passphrase)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "decode pkcs12")
	}

	var certPEM, keyPEM []byte
	for _, b := range blocks {
		if b.Type == "PRIVATE KEY" {
			keyPEM = append(keyPEM, pem.EncodeToMemory(b)...)
		} else {
			certPEM = append(certPEM, pem.EncodeToMemory(b)...)
		}
	}
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "build key pair")
	}
	return cert, nil
}

func (t *HTTPTransport) Post(ctx context.Context, url string, body []byte, secure bool) ([]byte, error) {
	client := t.plain
	if secure {
		if t.secure == nil {
			return nil, newError(KindTransport, "no client certificate configured for secure request")
		}
		client = t.secure
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "post " + url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("unexpected http status %d", resp.StatusCode),
			Code:    fmt.Sprint(resp.StatusCode),
			Raw:     raw,
		}
	}
	return raw, nil
}
