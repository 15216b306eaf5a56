package bannerbear

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// ServiceDomain is the domain the on-demand hosts live under.
	ServiceDomain = "bannerbear.com"

	signedURLHostSync  = "cdn." + ServiceDomain
	signedURLHostAsync = "ondemand." + ServiceDomain

	signatureParam = "&s="
)

var errUnsignedURL = errors.New("url carries no signature")

// SignedURL builds an on-demand render URL for baseID signed with the client's API key.
func (c *Client) SignedURL(baseID string, modifications []Modification, synchronous bool) (string, error) {
	return SignURL(c.apiKey, baseID, modifications, synchronous)
}

// SignURL builds
//
//	https://{cdn|ondemand}.bannerbear.com/signedurl/{baseID}/image.jpg?modifications={b64}&s={sig}
//
// where b64 is the unpadded URL-safe base64 of the modifications JSON and sig is
// the lower-case hex HMAC-SHA256 of everything before "&s=", keyed by apiKey.
func SignURL(apiKey, baseID string, modifications []Modification, synchronous bool) (string, error) {
	if baseID == "" {
		return "", fmt.Errorf("base id is required")
	}
	encoded, err := encodeModifications(modifications)
	if err != nil {
		return "", err
	}

	host := signedURLHostAsync
	if synchronous {
		host = signedURLHostSync
	}
	unsigned := fmt.Sprintf("https://%s/signedurl/%s/image.jpg?modifications=%s", host, baseID, encoded)
	return unsigned + signatureParam + hmacSHA256Hex([]byte(apiKey), unsigned), nil
}

// VerifySignedURL reports whether signedURL carries a valid signature for apiKey.
func VerifySignedURL(apiKey, signedURL string) bool {
	unsigned, signature, err := splitSignature(signedURL)
	if err != nil {
		return false
	}
	expected := hmacSHA256Hex([]byte(apiKey), unsigned)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// DecodeModifications recovers the modifications embedded in a signed URL.
func DecodeModifications(signedURL string) ([]Modification, error) {
	unsigned, _, err := splitSignature(signedURL)
	if err != nil {
		unsigned = signedURL
	}
	u, err := url.Parse(unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signed url: %w", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(u.Query().Get("modifications"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode modifications: %w", err)
	}
	var modifications []Modification
	if err := json.Unmarshal(raw, &modifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal modifications: %w", err)
	}
	return modifications, nil
}

// encodeModifications serializes without HTML escaping so "<", ">" and "&"
// reach the verifier as written.
func encodeModifications(modifications []Modification) (string, error) {
	if modifications == nil {
		modifications = []Modification{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(modifications); err != nil {
		return "", fmt.Errorf("failed to marshal modifications: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func splitSignature(signedURL string) (string, string, error) {
	idx := strings.LastIndex(signedURL, signatureParam)
	if idx < 0 {
		return "", "", errUnsignedURL
	}
	return signedURL[:idx], signedURL[idx+len(signatureParam):], nil
}

func hmacSHA256Hex(key []byte, data string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
