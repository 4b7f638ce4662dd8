package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	passwordChangeDoneURL = "/auth/password_change/done/"
	passwordResetDoneURL  = "/auth/password_reset/done/"
	invalidLoginMessage   = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

type AuthDomain interface {
	SignupForm(context.Context, *model.SignupFormRequest) (*model.SignupResponse, error)
	Signup(context.Context, *model.SignupRequest) (*model.SignupResponse, error)
	LoginForm(context.Context, *model.LoginFormRequest) (*model.LoginResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	PasswordChangeForm(context.Context, *model.PasswordChangeFormRequest) (*model.PasswordChangeResponse, error)
	PasswordChange(context.Context, *model.PasswordChangeRequest) (*model.PasswordChangeResponse, error)
	PasswordChangeDone(context.Context, *model.PasswordChangeDoneRequest) (*model.PasswordChangeDoneResponse, error)
	PasswordResetForm(context.Context, *model.PasswordResetFormRequest) (*model.PasswordResetResponse, error)
	PasswordReset(context.Context, *model.PasswordResetRequest) (*model.PasswordResetResponse, error)
	PasswordResetDone(context.Context, *model.PasswordResetDoneRequest) (*model.PasswordResetDoneResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) AuthDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) SignupForm(
	ctx context.Context, req *model.SignupFormRequest,
) (*model.SignupResponse, error) {
	return &model.SignupResponse{Errors: model.FormErrors{}}, nil
}

func (d *authDomain) Signup(ctx context.Context, req *model.SignupRequest) (*model.SignupResponse, error) {
	form := &model.SignupResponse{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Errors:    model.FormErrors{},
	}

	if msg := checkUsername(req.Username); msg != "" {
		form.Errors.Add("username", msg)
	} else {
		_, err := d.userRepo.GetByUsername(ctx, req.Username)
		if err == nil {
			form.Errors.Add("username", "A user with that username already exists.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
			return nil, errorx.Unknown
		}
	}

	if msg := checkEmail(req.Email); msg != "" {
		form.Errors.Add("email", msg)
	}

	if req.Password1 != req.Password2 {
		form.Errors.Add("password2", "The two password fields didn't match.")
	} else if msg := checkPassword(req.Password1, req.Username); msg != "" {
		form.Errors.Add("password2", msg)
	}

	if len(form.Errors) > 0 {
		return form, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SignupResponse{Redirect: model.RedirectTo("/")}, nil
}

func (d *authDomain) LoginForm(ctx context.Context, req *model.LoginFormRequest) (*model.LoginResponse, error) {
	return &model.LoginResponse{Next: safeNext(req.Next, ""), Errors: model.FormErrors{}}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	form := &model.LoginResponse{
		Username: req.Username,
		Next:     safeNext(req.Next, ""),
		Errors:   model.FormErrors{},
	}

	if req.Username == "" {
		form.Errors.Add("username", "This field is required.")
	}

	if req.Password == "" {
		form.Errors.Add("password", "This field is required.")
	}

	if len(form.Errors) > 0 {
		return form, nil
	}

	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
			return nil, errorx.Unknown
		}

		form.Errors.Add(model.NonFieldErrors, invalidLoginMessage)
		return form, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		form.Errors.Add(model.NonFieldErrors, invalidLoginMessage)
		return form, nil
	}

	cfg := xcontext.Configs(ctx).Auth
	token, err := xcontext.TokenEngine(ctx).Generate(cfg.AccessToken.Expiration, model.AccessToken{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return model.NewLoginSuccess(safeNext(req.Next, "/"), map[string]any{
		cfg.AccessToken.Name: token,
	}), nil
}

func (d *authDomain) Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *authDomain) PasswordChangeForm(
	ctx context.Context, req *model.PasswordChangeFormRequest,
) (*model.PasswordChangeResponse, error) {
	return &model.PasswordChangeResponse{Errors: model.FormErrors{}}, nil
}

func (d *authDomain) PasswordChange(
	ctx context.Context, req *model.PasswordChangeRequest,
) (*model.PasswordChangeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, notFoundOrUnknown(ctx, err, "Cannot get request user", "user")
	}

	form := &model.PasswordChangeResponse{Errors: model.FormErrors{}}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		form.Errors.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}

	if req.NewPassword1 != req.NewPassword2 {
		form.Errors.Add("new_password2", "The two password fields didn't match.")
	} else if msg := checkPassword(req.NewPassword1, user.Username); msg != "" {
		form.Errors.Add("new_password2", msg)
	}

	if len(form.Errors) > 0 {
		return form, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update password: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PasswordChangeResponse{Redirect: model.RedirectTo(passwordChangeDoneURL)}, nil
}

func (d *authDomain) PasswordChangeDone(
	ctx context.Context, req *model.PasswordChangeDoneRequest,
) (*model.PasswordChangeDoneResponse, error) {
	return &model.PasswordChangeDoneResponse{}, nil
}

func (d *authDomain) PasswordResetForm(
	ctx context.Context, req *model.PasswordResetFormRequest,
) (*model.PasswordResetResponse, error) {
	return &model.PasswordResetResponse{Errors: model.FormErrors{}}, nil
}

// PasswordReset only records the request. There is no mail transport, so
// the reset has to be completed by an operator.
func (d *authDomain) PasswordReset(
	ctx context.Context, req *model.PasswordResetRequest,
) (*model.PasswordResetResponse, error) {
	form := &model.PasswordResetResponse{Email: req.Email, Errors: model.FormErrors{}}
	if req.Email == "" {
		form.Errors.Add("email", "This field is required.")
	} else if msg := checkEmail(req.Email); msg != "" {
		form.Errors.Add("email", msg)
	}

	if len(form.Errors) > 0 {
		return form, nil
	}

	xcontext.Logger(ctx).Infof("Password reset is requested for %s", req.Email)
	return &model.PasswordResetResponse{Redirect: model.RedirectTo(passwordResetDoneURL)}, nil
}

func (d *authDomain) PasswordResetDone(
	ctx context.Context, req *model.PasswordResetDoneRequest,
) (*model.PasswordResetDoneResponse, error) {
	return &model.PasswordResetDoneResponse{}, nil
}
