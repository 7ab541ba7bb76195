package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/middlewares"
	authrequests "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/requests/auth"
	"github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses"
	authresponses "github.com/AnuGuin/LegalAI-Backend/internal/interfaces/httpserver/responses/auth"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

type AuthRoute struct {
	users *user.Service
}

func NewAuthRoute(users *user.Service) *AuthRoute {
	return &AuthRoute{users: users}
}

// RegisterRouter mounts the account endpoints. Register, login and refresh
// are reachable without a token; logout and me require one.
func (route *AuthRoute) RegisterRouter(public gin.IRouter, protected gin.IRouter) {
	open := public.Group("/auth")
	open.POST("/register", route.register)
	open.POST("/login", route.login)
	open.POST("/refresh", route.refresh)

	authed := protected.Group("/auth")
	authed.POST("/logout", route.logout)
	authed.GET("/me", route.me)
}

// register godoc
// @Summary Register a new account
// @Description Creates an account and returns an access/refresh token pair.
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authrequests.RegisterRequest true "Account details"
// @Success 201 {object} responses.Envelope{data=authresponses.AuthResponse} "Account created"
// @Failure 400 {object} platformerrors.HTTPErrorResponse "Validation failed"
// @Failure 409 {object} platformerrors.HTTPErrorResponse "Email already registered"
// @Router /api/auth/register [post]
func (route *AuthRoute) register(reqCtx *gin.Context) {
	var req authrequests.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "8f1c9d2a-5e6b-4a3f-b7c8-d9e0f1a2b3c4")
		return
	}

	result, err := route.users.Register(reqCtx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.Created(reqCtx, authresponses.NewAuthResponse(result))
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns an access/refresh token pair.
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authrequests.LoginRequest true "Credentials"
// @Success 200 {object} responses.Envelope{data=authresponses.AuthResponse} "Authenticated"
// @Failure 401 {object} platformerrors.HTTPErrorResponse "Invalid credentials"
// @Router /api/auth/login [post]
func (route *AuthRoute) login(reqCtx *gin.Context) {
	var req authrequests.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "2a7b4c1d-8e9f-4056-a1b2-c3d4e5f6a7b8")
		return
	}

	result, err := route.users.Login(reqCtx.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, authresponses.NewAuthResponse(result))
}

// refresh godoc
// @Summary Rotate a refresh token
// @Description Exchanges a valid refresh token for a new token pair. The
// @Description presented token is revoked in the same operation.
// @Tags Auth API
// @Accept json
// @Produce json
// @Param request body authrequests.RefreshRequest true "Refresh token"
// @Success 200 {object} responses.Envelope{data=authresponses.AuthResponse} "Rotated"
// @Failure 401 {object} platformerrors.HTTPErrorResponse "Unknown or expired refresh token"
// @Router /api/auth/refresh [post]
func (route *AuthRoute) refresh(reqCtx *gin.Context) {
	var req authrequests.RefreshRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "c4d5e6f7-a8b9-4c0d-9e1f-2a3b4c5d6e7f")
		return
	}

	result, err := route.users.Refresh(reqCtx.Request.Context(), req.RefreshToken)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, authresponses.NewAuthResponse(result))
}

// logout godoc
// @Summary Log out everywhere
// @Description Revokes every refresh token the account holds.
// @Tags Auth API
// @Security BearerAuth
// @Success 204 "Logged out"
// @Failure 401 {object} platformerrors.HTTPErrorResponse "Missing or invalid token"
// @Router /api/auth/logout [post]
func (route *AuthRoute) logout(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "5e6f7a8b-9c0d-4e1f-a2b3-c4d5e6f7a8b9")
		return
	}

	if err := route.users.Logout(reqCtx.Request.Context(), principal.UserID); err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.NoContent(reqCtx)
}

// me godoc
// @Summary Get the current account
// @Tags Auth API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.Envelope{data=authresponses.UserView} "Account"
// @Failure 401 {object} platformerrors.HTTPErrorResponse "Missing or invalid token"
// @Router /api/auth/me [get]
func (route *AuthRoute) me(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "d0e1f2a3-b4c5-4d6e-8f9a-0b1c2d3e4f5a")
		return
	}

	usr, err := route.users.GetByPublicID(reqCtx.Request.Context(), principal.PublicID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	responses.OK(reqCtx, authresponses.NewUserView(usr))
}
