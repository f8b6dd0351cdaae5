package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"net/url"

	"github.com/pquerna/otp/totp"
)

// TOTPIssuer appears in authenticator apps when an admin enrolls.
const TOTPIssuer = "Amora Admin"

// GenerateOTPSecret generates a new base32 TOTP secret.
func GenerateOTPSecret() string {
	secretBytes := make([]byte, 20)
	rand.Read(secretBytes)
	return base32.StdEncoding.EncodeToString(secretBytes)
}

// ValidateTOTP validates a TOTP code against a secret.
func ValidateTOTP(secret string, code string) bool {
	return totp.Validate(code, secret)
}

// GenerateOTPProvisioningURI returns the otpauth:// URI an authenticator app
// consumes during setup.
func GenerateOTPProvisioningURI(secret string, accountName string) string {
	account := url.QueryEscape(accountName)
	issuer := url.QueryEscape(TOTPIssuer)
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		issuer, account, secret, issuer)
}
