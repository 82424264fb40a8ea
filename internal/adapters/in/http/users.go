package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// RegisterUser handles POST /api/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body servers.RegisterUserJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := user.ParseRole(string(body.Role))
	if err != nil {
		return s.writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(id, body.Name, body.Email, body.Password, role)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.commands.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.User{
		Id:    id.Bytes(),
		Name:  cmd.Name(),
		Email: cmd.Email(),
		Role:  servers.Role(role),
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var body servers.LoginJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewAuthenticateUserQuery(body.Email, body.Password)
	if err != nil {
		return s.writeError(ctx, err)
	}

	authenticated, err := s.queries.AuthenticateUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	token, expiresAt, err := s.tokens.Issue(authenticated.Principal)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: servers.User{
			Id:    authenticated.Principal.UserID.Bytes(),
			Name:  authenticated.Name,
			Email: authenticated.Email,
			Role:  servers.Role(authenticated.Principal.Role),
		},
	})
}
