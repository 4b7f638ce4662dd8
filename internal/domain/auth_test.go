package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

func Test_authDomain_Signup(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo)

	resp, err := domain.Signup(ctx, &model.SignupRequest{
		FirstName: "Anna",
		LastName:  "Karenina",
		Username:  "anna",
		Email:     "anna@example.com",
		Password1: "Train-Station-1877",
		Password2: "Train-Station-1877",
	})
	require.NoError(t, err)
	require.Equal(t, "/", resp.RedirectURL)

	user, err := userRepo.GetByUsername(ctx, "anna")
	require.NoError(t, err)
	require.Equal(t, "Anna Karenina", user.FullName())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Train-Station-1877")))
}

func Test_authDomain_Signup_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository())

	tests := []struct {
		name  string
		req   *model.SignupRequest
		field string
	}{
		{
			name:  "taken username",
			req:   &model.SignupRequest{Username: testutil.User1.Username, Password1: "Good-pass-123", Password2: "Good-pass-123"},
			field: "username",
		},
		{
			name:  "invalid username",
			req:   &model.SignupRequest{Username: "bad name!", Password1: "Good-pass-123", Password2: "Good-pass-123"},
			field: "username",
		},
		{
			name:  "invalid email",
			req:   &model.SignupRequest{Username: "newbie", Email: "not-an-email", Password1: "Good-pass-123", Password2: "Good-pass-123"},
			field: "email",
		},
		{
			name:  "password mismatch",
			req:   &model.SignupRequest{Username: "newbie", Password1: "Good-pass-123", Password2: "Good-pass-321"},
			field: "password2",
		},
		{
			name:  "short password",
			req:   &model.SignupRequest{Username: "newbie", Password1: "short", Password2: "short"},
			field: "password2",
		},
		{
			name:  "numeric password",
			req:   &model.SignupRequest{Username: "newbie", Password1: "1234567809", Password2: "1234567809"},
			field: "password2",
		},
		{
			name:  "common password",
			req:   &model.SignupRequest{Username: "newbie", Password1: "Password1", Password2: "Password1"},
			field: "password2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := domain.Signup(ctx, tt.req)
			require.NoError(t, err)
			require.Empty(t, resp.RedirectURL)
			require.True(t, resp.Errors.Has(tt.field), "errors: %v", resp.Errors)
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: testutil.FixturePassword,
		Next:     "/create/",
	})
	require.NoError(t, err)
	require.Equal(t, "/create/", resp.RedirectURL)

	info, ok := resp.SessionInfo()
	require.True(t, ok)

	token, ok := info[xcontext.Configs(ctx).Auth.AccessToken.Name].(string)
	require.True(t, ok)

	var accessToken model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(token, &accessToken))
	require.Equal(t, model.AccessToken{ID: testutil.User1.ID, Username: testutil.User1.Username}, accessToken)

	// An external next url is ignored.
	resp, err = domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: testutil.FixturePassword,
		Next:     "//evil.example.com/",
	})
	require.NoError(t, err)
	require.Equal(t, "/", resp.RedirectURL)
}

func Test_safeNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{name: "empty", next: "", want: "/"},
		{name: "local path", next: "/posts/1/?page=2", want: "/posts/1/?page=2"},
		{name: "relative path", next: "posts/1/", want: "/"},
		{name: "protocol relative", next: "//evil.example", want: "/"},
		{name: "backslash", next: "/\\evil.example", want: "/"},
		{name: "absolute url", next: "https://evil.example/", want: "/"},
		{name: "tab", next: "/\t/evil.example", want: "/"},
		{name: "newline", next: "/\n/evil.example", want: "/"},
		{name: "carriage return", next: "/\r/evil.example", want: "/"},
		{name: "space", next: "/ /evil.example", want: "/"},
		{name: "nul", next: "/\x00/evil.example", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, safeNext(tt.next, "/"))
		})
	}
}

func Test_authDomain_Login_ControlCharNext(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Username: testutil.User1.Username,
		Password: testutil.FixturePassword,
		Next:     "/\t/evil.example",
	})
	require.NoError(t, err)
	require.Equal(t, "/", resp.RedirectURL)
}

func Test_authDomain_Login_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.Login(ctx, &model.LoginRequest{Username: testutil.User1.Username, Password: "wrong-password"})
	require.NoError(t, err)
	require.Empty(t, resp.RedirectURL)
	require.True(t, resp.Errors.Has(model.NonFieldErrors))
	_, ok := resp.SessionInfo()
	require.False(t, ok)

	resp, err = domain.Login(ctx, &model.LoginRequest{Username: "unknown", Password: "whatever"})
	require.NoError(t, err)
	require.True(t, resp.Errors.Has(model.NonFieldErrors))

	resp, err = domain.Login(ctx, &model.LoginRequest{})
	require.NoError(t, err)
	require.True(t, resp.Errors.Has("username"))
	require.True(t, resp.Errors.Has("password"))
}

func Test_authDomain_PasswordChange(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo)

	resp, err := domain.PasswordChange(ctx, &model.PasswordChangeRequest{
		OldPassword:  "wrong-password",
		NewPassword1: "Another-pass-42",
		NewPassword2: "Another-pass-42",
	})
	require.NoError(t, err)
	require.True(t, resp.Errors.Has("old_password"))

	resp, err = domain.PasswordChange(ctx, &model.PasswordChangeRequest{
		OldPassword:  testutil.FixturePassword,
		NewPassword1: "Another-pass-42",
		NewPassword2: "Another-pass-42",
	})
	require.NoError(t, err)
	require.Equal(t, "/auth/password_change/done/", resp.RedirectURL)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Another-pass-42")))
}

func Test_authDomain_PasswordReset(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.PasswordReset(ctx, &model.PasswordResetRequest{Email: "broken"})
	require.NoError(t, err)
	require.True(t, resp.Errors.Has("email"))

	resp, err = domain.PasswordReset(ctx, &model.PasswordResetRequest{Email: "leo@example.com"})
	require.NoError(t, err)
	require.Equal(t, "/auth/password_reset/done/", resp.RedirectURL)
}

func Test_authDomain_Logout(t *testing.T) {
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.Logout(testutil.MockContext(), &model.LogoutRequest{})
	require.NoError(t, err)

	info, ok := resp.SessionInfo()
	require.True(t, ok)
	require.Nil(t, info)
}
