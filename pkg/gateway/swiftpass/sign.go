package swiftpass

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"
	"sync"
)

// SignKey is the field that carries the request signature.
const SignKey = "sign"

// Algorithm selects the digest used for signatures.
type Algorithm int

const (
	MD5 Algorithm = iota + 1
	SHA1
)

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA1"
	}
	return "UNKNOWN"
}

// ParseAlgorithm maps a sign type name to an Algorithm. Empty means MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "MD5":
		return MD5, nil
	case "SHA1", "SHA-1":
		return SHA1, nil
	}
	return 0, newError(KindConfig, "unsupported sign type %q", name)
}

var (
	digestMu sync.RWMutex
	digests  = map[Algorithm]func() hash.Hash{
		MD5:  md5.New,
		SHA1: sha1.New,
	}
)

// RegisterDigest installs or replaces the hash constructor for alg.
func RegisterDigest(alg Algorithm, fn func() hash.Hash) {
	digestMu.Lock()
	defer digestMu.Unlock()
	digests[alg] = fn
}

func digestFor(alg Algorithm) (func() hash.Hash, bool) {
	digestMu.RLock()
	defer digestMu.RUnlock()
	fn, ok := digests[alg]
	return fn, ok
}

// Sign computes the uppercase hex digest of the canonical string of p
// followed by &key=<key>. An existing sign field is ignored.
func Sign(p Params, key string, alg Algorithm) (string, error) {
	fn, ok := digestFor(alg)
	if !ok {
		return "", newError(KindConfig, "no digest registered for %s", alg)
	}

	fields := p.Clone()
	delete(fields, SignKey)
	canonical, err := Canonical(fields)
	if err != nil {
		return "", err
	}

	h := fn()
	h.Write([]byte(canonical + "&key=" + key))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

// Verify recomputes the signature of p and compares it with p's sign field.
func Verify(p Params, key string, alg Algorithm) error {
	got, _ := p[SignKey].(string)
	if got == "" {
		return newError(KindSignature, "response is not signed")
	}
	want, err := Sign(p, key, alg)
	if err != nil {
		if IsKind(err, KindValidation) {
			return &Error{Kind: KindSignature, Message: "signed fields cannot be canonicalized", Err: err}
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(strings.ToUpper(got)), []byte(want)) != 1 {
		return newError(KindSignature, "signature mismatch")
	}
	return nil
}
