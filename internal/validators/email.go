package validators

import (
	"context"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/client-registry/internal/httperr"
)

const CodeInvalidEmail = "invalid_email"

var validate = validator.New()

// EmailPolicy decides which addresses clients may be stored with.
// CheckDomain adds a DNS lookup and should stay off where the network is
// not reliable.
type EmailPolicy struct {
	CheckDomain bool
}

// Validate returns the invalid_email business error for a rejected
// address. The empty string is always accepted: it is how an email is
// cleared. ctx bounds the domain lookup.
func (p EmailPolicy) Validate(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	if !IsEmailSyntaxValid(email) {
		return httperr.ErrBusiness(CodeInvalidEmail)
	}
	if p.CheckDomain && !IsEmailDomainValid(ctx, email) {
		return httperr.ErrBusiness(CodeInvalidEmail)
	}
	return nil
}

// IsEmailSyntaxValid accepts a bare address only, without display name
// or angle brackets.
func IsEmailSyntaxValid(email string) bool {
	return validate.Var(email, "email") == nil
}

func IsEmailDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
