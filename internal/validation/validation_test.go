package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@x.com", "a.b+c@sub.example.org", "1@2.3x"}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "alice", "alice@x", "alice@@x.com", "a lice@x.com", "@x.com", "alice@.com "}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("1234567890"))

	invalid := []string{"", "123456789", "12345678901", "123456789a", "12345 7890", "+1234567890"}
	for _, p := range invalid {
		assert.Error(t, ValidatePhone(p), p)
	}
}

func TestValidateRequired(t *testing.T) {
	err := ValidateRequired(
		[2]string{"full_name", "Alice"},
		[2]string{"email", "alice@x.com"},
	)
	assert.NoError(t, err)

	err = ValidateRequired(
		[2]string{"full_name", "Alice"},
		[2]string{"email", "   "},
		[2]string{"phone", ""},
	)
	assert.EqualError(t, err, "email is required")
}
