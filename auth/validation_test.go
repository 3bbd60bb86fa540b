package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darshvaidya/go-blog-client/auth"
)

func TestRegisterInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   auth.RegisterInput
		wantErr bool
	}{
		{name: "valid", input: auth.RegisterInput{Email: "a@b.com", Password: "password123"}},
		{name: "missing email", input: auth.RegisterInput{Password: "password123"}, wantErr: true},
		{name: "bad email", input: auth.RegisterInput{Email: "nope", Password: "password123"}, wantErr: true},
		{name: "short password", input: auth.RegisterInput{Email: "a@b.com", Password: "short"}, wantErr: true},
		{name: "missing password", input: auth.RegisterInput{Email: "a@b.com"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoginInputValidation(t *testing.T) {
	require.NoError(t, auth.LoginInput{Email: "a@b.com", Password: "x"}.Validate())
	require.Error(t, auth.LoginInput{Email: "a@b.com"}.Validate())
	require.Error(t, auth.LoginInput{Password: "x"}.Validate())
}

func TestResetInputValidation(t *testing.T) {
	require.NoError(t, auth.RequestResetInput{Email: "a@b.com"}.Validate())
	require.Error(t, auth.RequestResetInput{Email: "nope"}.Validate())

	require.NoError(t, auth.ConfirmResetInput{Token: "tok", NewPassword: "password123"}.Validate())
	require.Error(t, auth.ConfirmResetInput{NewPassword: "password123"}.Validate())
	require.Error(t, auth.ConfirmResetInput{Token: "tok", NewPassword: "short"}.Validate())
}
