package model

// AccessToken is the object signed into the access token kept in the session.
type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SignupFormRequest struct{}

type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type SignupResponse struct {
	Redirect

	FirstName string
	LastName  string
	Username  string
	Email     string
	Errors    FormErrors
}

func (SignupResponse) TemplateName() string { return "users/signup.html" }

type LoginFormRequest struct {
	Next string `json:"next"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Next     string `json:"next"`
}

type LoginResponse struct {
	Redirect

	Username string
	Next     string
	Errors   FormErrors

	session map[string]any
}

func (LoginResponse) TemplateName() string { return "users/login.html" }

func (r LoginResponse) SessionInfo() (map[string]any, bool) {
	return r.session, r.session != nil
}

func NewLoginSuccess(redirectURL string, session map[string]any) *LoginResponse {
	return &LoginResponse{Redirect: RedirectTo(redirectURL), session: session}
}

type LogoutRequest struct{}

type LogoutResponse struct{}

func (LogoutResponse) TemplateName() string { return "users/logged_out.html" }

// SessionInfo asks to drop the whole session.
func (LogoutResponse) SessionInfo() (map[string]any, bool) {
	return nil, true
}

type PasswordChangeFormRequest struct{}

type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

type PasswordChangeResponse struct {
	Redirect

	Errors FormErrors
}

func (PasswordChangeResponse) TemplateName() string { return "users/password_change_form.html" }

type PasswordChangeDoneRequest struct{}

type PasswordChangeDoneResponse struct{}

func (PasswordChangeDoneResponse) TemplateName() string { return "users/password_change_done.html" }

type PasswordResetFormRequest struct{}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetResponse struct {
	Redirect

	Email  string
	Errors FormErrors
}

func (PasswordResetResponse) TemplateName() string { return "users/password_reset_form.html" }

type PasswordResetDoneRequest struct{}

type PasswordResetDoneResponse struct{}

func (PasswordResetDoneResponse) TemplateName() string { return "users/password_reset_done.html" }
