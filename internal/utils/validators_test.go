package utils_test

import (
	"testing"

	"bracketpool/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, utils.ValidateEmail("alice@example.com"))
	assert.Error(t, utils.ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, utils.ValidatePassword("Str0ngPass"))
	assert.Error(t, utils.ValidatePassword("short1A"))
	assert.Error(t, utils.ValidatePassword("nouppercase1"))
	assert.Error(t, utils.ValidatePassword("NOLOWERCASE1"))
	assert.Error(t, utils.ValidatePassword("NoDigitsHere"))
}

func TestValidateParticipantName(t *testing.T) {
	assert.NoError(t, utils.ValidateParticipantName("Alice"))
	assert.Error(t, utils.ValidateParticipantName("A"))
	assert.Error(t, utils.ValidateParticipantName(string(make([]byte, 101))))
}
