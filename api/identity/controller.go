// Package identity exposes the authentication endpoints and the bearer
// authorization middleware shared by every protected route.
package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mazehub/mazehub-api/service/i"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerUser)
		auth.POST("/login", c.login)
		auth.POST("/guest", c.guest)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.GET("/me", c.me)
	}
}

// registerUser handles user registration.
func (c *IdentityServer) registerUser(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.authService.Register(request.Username, request.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"message": "User registered successfully"}
	ctx.JSON(http.StatusCreated, response)
}

// login handles user login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(request.Username, request.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Guest:    user.Guest,
		Token:    token,
	}
	ctx.JSON(http.StatusOK, response)
}

// guest signs in an anonymous player under a throwaway account.
func (c *IdentityServer) guest(ctx *gin.Context) {
	user, token, err := c.authService.SignInGuest()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Guest:    user.Guest,
		Token:    token,
	}
	ctx.JSON(http.StatusOK, response)
}

// me reports the identity behind the presented token.
func (c *IdentityServer) me(ctx *gin.Context) {
	id, err := CurrentUserID(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	response := &IdentityResponse{
		ID:       id.String(),
		Username: CurrentUsername(ctx),
	}
	ctx.JSON(http.StatusOK, response)
}
