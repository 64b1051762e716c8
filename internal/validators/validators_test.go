package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()

	v := validator.New()
	require.NoError(t, v.RegisterValidation("password", PasswordValidator))
	require.NoError(t, v.RegisterValidation("usstate", USState))
	require.NoError(t, v.RegisterValidation("nodupes", NoDupes))
	return v
}

func TestPasswordValidator(t *testing.T) {
	v := newValidator(t)

	type body struct {
		Password string `validate:"password"`
	}

	assert.NoError(t, v.Struct(&body{Password: "Sup3r-Secret"}))
	assert.Error(t, v.Struct(&body{Password: "short1!"}))
	assert.Error(t, v.Struct(&body{Password: "alllowercase1!"}))
	assert.Error(t, v.Struct(&body{Password: "NoDigitsHere!"}))
	assert.Error(t, v.Struct(&body{Password: "NoSpecials123"}))
}

func TestUSState(t *testing.T) {
	v := newValidator(t)

	type body struct {
		State string `validate:"usstate"`
	}

	assert.NoError(t, v.Struct(&body{State: "NY"}))
	assert.NoError(t, v.Struct(&body{State: "tx"}))
	assert.NoError(t, v.Struct(&body{State: ""}))
	assert.Error(t, v.Struct(&body{State: "ZZ"}))
	assert.Error(t, v.Struct(&body{State: "New York"}))
}

func TestNoDupes(t *testing.T) {
	v := newValidator(t)

	type body struct {
		Trades []string `validate:"nodupes"`
	}

	assert.NoError(t, v.Struct(&body{Trades: []string{"Electrical", "Plumbing"}}))
	assert.Error(t, v.Struct(&body{Trades: []string{"Electrical", " electrical "}}))
}
