package auth

import (
	"encoding/base64"
	"strings"
)

// ParseBasic extracts the email and password of a "Basic <base64>"
// Authorization header. The password may contain colons; the email may not.
func ParseBasic(header string) (email, password string, ok bool) {
	scheme, encoded, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}

	email, password, found = strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}

	return email, password, true
}
