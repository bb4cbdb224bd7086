package swiftpass

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Post(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		assert.Equal(t, http.MethodPost, r.Method)
		io.WriteString(w, "<xml><status>0</status></xml>")
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(testAccount(t))
	require.NoError(t, err)

	raw, err := tr.Post(context.Background(), srv.URL, []byte("<xml></xml>"), false)
	require.NoError(t, err)
	assert.Equal(t, "<xml><status>0</status></xml>", string(raw))
	assert.Equal(t, "<xml></xml>", gotBody)
	assert.Contains(t, gotType, "text/xml")
}

func TestHTTPTransport_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(testAccount(t))
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), srv.URL, nil, false)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindTransport, e.Kind)
	assert.Equal(t, "503", e.Code)
}

func TestHTTPTransport_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr, err := NewHTTPTransport(testAccount(t))
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), url, nil, false)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindTransport, e.Kind)
	assert.NotNil(t, e.Err)
}

func TestHTTPTransport_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	a, err := Config{MerchantID: "Y", Key: "k", Timeout: 20 * time.Millisecond}.Account()
	require.NoError(t, err)
	tr, err := NewHTTPTransport(a)
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), srv.URL, nil, false)
	assert.True(t, IsKind(err, KindTransport))
}

func TestHTTPTransport_SecureWithoutCertificate(t *testing.T) {
	tr, err := NewHTTPTransport(testAccount(t))
	require.NoError(t, err)

	_, err = tr.Post(context.Background(), "https://example.invalid", nil, true)
	assert.True(t, IsKind(err, KindTransport))
}

func TestNewHTTPTransport_BadCertificate(t *testing.T) {
	a, err := Config{MerchantID: "Y", Key: "k", PFX: "bm90IGEgcGZ4"}.Account()
	require.NoError(t, err)
	assert.True(t, a.HasCertificate())

	_, err = NewHTTPTransport(a)
	assert.True(t, IsKind(err, KindConfig))
}

func TestHTTPTransport_SecurePresentsClientCertificate(t *testing.T) {
	pfx, err := os.ReadFile("testdata/client.p12")
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.TLS.PeerCertificates) == 0 {
			http.Error(w, "no client certificate", http.StatusForbidden)
			return
		}
		io.WriteString(w, "<xml><cn>"+r.TLS.PeerCertificates[0].Subject.CommonName+"</cn></xml>")
	}))
	srv.TLS = &tls.Config{ClientAuth: tls.RequireAnyClientCert}
	srv.StartTLS()
	defer srv.Close()

	// the bundle is protected with the merchant id, the default passphrase
	a, err := Config{MerchantID: "7551000001", Key: "k", PFX: base64.StdEncoding.EncodeToString(pfx)}.Account()
	require.NoError(t, err)
	tr, err := NewHTTPTransport(a)
	require.NoError(t, err)

	roots := x509.NewCertPool()
	roots.AddCert(srv.Certificate())
	tr.secure.Transport.(*http.Transport).TLSClientConfig.RootCAs = roots

	raw, err := tr.Post(context.Background(), srv.URL, []byte("<xml></xml>"), true)
	require.NoError(t, err)
	assert.Equal(t, "<xml><cn>7551000001</cn></xml>", string(raw))

	_, err = tr.Post(context.Background(), srv.URL, []byte("<xml></xml>"), false)
	assert.True(t, IsKind(err, KindTransport))
}

func TestNewHTTPTransport_WrongPassphrase(t *testing.T) {
	pfx, err := os.ReadFile("testdata/client.p12")
	require.NoError(t, err)

	a, err := Config{MerchantID: "7551000001", Key: "k", PFX: base64.StdEncoding.EncodeToString(pfx), Passphrase: "wrong"}.Account()
	require.NoError(t, err)

	_, err = NewHTTPTransport(a)
	assert.True(t, IsKind(err, KindConfig))
}
