// Package ownership enforces that an authenticated caller only touches its
// own records. The token proves who the caller is; it says nothing about which
// records the caller asked for, so every private read and mutation carries a
// caller-supplied owner email that must match the verified claim before the
// store is consulted.
package ownership

import (
	"strings"

	pkgerrors "github.com/communitykitchen/foodshare-backend/pkg/errors"
)

// Require compares the verified token email against the caller-supplied
// target email. The target is attacker-controlled input; a mismatch is
// Forbidden even though the caller is authenticated.
func Require(verifiedEmail, targetEmail string) error {
	verified := normalize(verifiedEmail)
	target := normalize(targetEmail)

	if verified == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "verified identity missing")
	}
	if target == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner email is required")
	}
	if verified != target {
		return pkgerrors.New(pkgerrors.CodeForbidden, "email does not match authenticated identity")
	}
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
