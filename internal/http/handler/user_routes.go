package handler

import (
	"net/http"
	"strings"

	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	GetUsers(actor *entity.User) ([]*contract.UserResponse, apierror.ErrorResponse)
	CheckEmail(req *contract.ResendConfirmRequest) (*contract.EmailStatus, apierror.ErrorResponse)
	CreateUser(req *contract.CreateUserRequest) apierror.ErrorResponse
	Login(req *contract.UserLoginRequest) (*contract.UserLoginResponse, apierror.ErrorResponse)
	Logout(accessToken string) apierror.ErrorResponse
	ConfirmSignup(req *contract.ConfirmSignupRequest) apierror.ErrorResponse
	ResendConfirmation(req *contract.ResendConfirmRequest) apierror.ErrorResponse
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) GetUsers(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	users, apierr := u.UserService.GetUsers(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"users": users}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) CheckEmail(c echo.Context) error {
	var req contract.ResendConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	status, err := u.UserService.CheckEmail(&req)
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{
		"status": status,
		"exists": *status == contract.EmailStatusExists,
	}
	return c.JSON(http.StatusOK, &resp)
}

func (u *DefaultUserRoute) CreateUser(c echo.Context) error {
	var req contract.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	err := u.UserService.CreateUser(&req)
	if err != nil {
		return c.JSON(err.Code(), err)
	}
	return c.NoContent(http.StatusCreated)
}

func (u *DefaultUserRoute) CreateLogin(c echo.Context) error {
	var req contract.UserLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := u.UserService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (u *DefaultUserRoute) Logout(c echo.Context) error {
	token := strings.TrimSpace(c.Request().Header.Get("Authorization"))
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
	}

	apierr := u.UserService.Logout(token)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (u *DefaultUserRoute) ConfirmSignup(c echo.Context) error {
	var req contract.ConfirmSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	apierr := u.UserService.ConfirmSignup(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (u *DefaultUserRoute) ResendConfirmation(c echo.Context) error {
	var req contract.ResendConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	apierr := u.UserService.ResendConfirmation(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
