package service

import (
	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	cognitoclient "insuretrack/internal/infrastructure/aws/cognito"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindAll() ([]*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindActiveBySub(sub string) (*entity.User, error)
	Save(user *entity.User) error
}

type UserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
	Cognito  cognitoclient.CognitoInterface
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, cogClient cognitoclient.CognitoInterface) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Validate: validate,
		Cognito:  cogClient,
	}
}

func (u *UserService) GetUsers(actor *entity.User) ([]*contract.UserResponse, apierror.ErrorResponse) {
	if !actor.IsAdmin() {
		return nil, apierror.AdminOnlyError
	}

	users, err := u.UserRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch users: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user, actor)
	}
	return resp, nil
}

// CreateUser creates a new user on Cognito (as well as in our database),
// and sends a verification code to the user's email address.
func (u *UserService) CreateUser(req *contract.CreateUserRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	existing, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return apierror.InternalServerError
	}

	if existing != nil {
		return apierror.UserAlreadyExistsError
	}

	cogUser := &cognitoclient.User{Email: req.Email, Password: req.Password}
	sub, apierr, revert := handleUserSignup(u.Cognito, cogUser)
	if apierr != nil {
		return apierr
	}

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.UserRoleSub
	}

	now := utils.NowUTC()
	user := &entity.User{
		SubUUID:       sub,
		Username:      req.Username,
		Email:         req.Email,
		EmailVerified: false,
		Role:          role,
		ContractorID:  req.ContractorID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.UserRepo.Save(user)
	if err != nil {
		revert()
		log.Errorf("failed to create user: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (u *UserService) Login(req *contract.UserLoginRequest) (*contract.UserLoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.IDPUserNotFoundError
	}

	if user.Suspended || !user.Active {
		return nil, apierror.MissingAccessError
	}

	credentials := &cognitoclient.UserLogin{
		Email:    req.Email,
		Password: req.Password,
	}

	auth, apierr := handleUserSignin(u.Cognito, credentials)
	if apierr != nil {
		return nil, apierr
	}
	return &contract.UserLoginResponse{AccessToken: auth.AccessToken, IDToken: auth.IDToken}, nil
}

func (u *UserService) ConfirmSignup(req *contract.ConfirmSignupRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return apierror.InternalServerError
	}

	if user == nil {
		return apierror.IDPUserNotFoundError
	}

	if user.EmailVerified {
		return apierror.UserAlreadyConfirmedError
	}

	confirms := &cognitoclient.UserConfirmation{
		Email: req.Email,
		Code:  req.Code,
	}

	apierr := handleSignupConfirmation(u.Cognito, confirms)
	if apierr != nil {
		return apierr
	}

	user.EmailVerified = true
	user.UpdatedAt = utils.NowUTC()
	err = u.UserRepo.Save(user)
	if err != nil {
		log.Errorf("failed to update user (%d) verified status: %v", user.ID, err)
	}
	return nil
}

// Logout invalidates every session of the user across all devices.
func (u *UserService) Logout(accessToken string) apierror.ErrorResponse {
	if err := u.Cognito.GlobalSignOut(accessToken); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

func (u *UserService) ResendConfirmation(req *contract.ResendConfirmRequest) apierror.ErrorResponse {
	if err := u.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	if err := u.Cognito.ResendConfirmation(req.Email); err != nil {
		return utils.MapCognitoError(err)
	}
	return nil
}

// CheckEmail reports whether an email address is free to register.
func (u *UserService) CheckEmail(req *contract.ResendConfirmRequest) (*contract.EmailStatus, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	var status contract.EmailStatus
	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user (%s) exists: %v", req.Email, err)
		return nil, apierror.InternalServerError
	}

	switch {
	case user == nil:
		status = contract.EmailStatusAvailable
	case !user.EmailVerified:
		status = contract.EmailStatusVerifying
	default:
		status = contract.EmailStatusExists
	}
	return &status, nil
}

func toUserResponse(user *entity.User, actor *entity.User) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         string(user.Role),
		ContractorID: user.ContractorID,
		CreatedAt:    utils.FormatEpoch(user.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(user.UpdatedAt),
	}

	// Moderation fields are only exposed to admins.
	if actor.IsAdmin() {
		resp.IsVerified = &user.EmailVerified
		resp.Suspended = &user.Suspended
	}
	return resp
}
