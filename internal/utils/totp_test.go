package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPSecret(t *testing.T) {
	secret := GenerateOTPSecret()
	assert.NotEmpty(t, secret)
	assert.NotEqual(t, secret, GenerateOTPSecret())
}

func TestValidateTOTPRoundTrip(t *testing.T) {
	secret := GenerateOTPSecret()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	assert.True(t, ValidateTOTP(secret, code))
	assert.False(t, ValidateTOTP(secret, "000000"))
	assert.False(t, ValidateTOTP(GenerateOTPSecret(), code))
}

func TestGenerateOTPProvisioningURI(t *testing.T) {
	uri := GenerateOTPProvisioningURI("SECRETBASE32", "admin@example.com")

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "secret=SECRETBASE32")
	assert.Contains(t, uri, "issuer=Amora")
	assert.Contains(t, uri, "admin%40example.com")
}
