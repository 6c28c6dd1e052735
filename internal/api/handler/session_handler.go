package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the login flows. Every successful call answers with
// the resulting session state.
type SessionHandler struct {
	session SessionModel
}

func NewSessionHandler(session SessionModel) *SessionHandler {
	return &SessionHandler{session: session}
}

// State returns the current session.
//
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.SessionState
// @Router       /v1/session [get]
func (h *SessionHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.State())
}

// Login signs in with a password.
//
// @Summary      Login with password
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Email or phone with country code, and password"
// @Success      200   {object}  viewmodel.SessionState
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.session.Login(c.Request().Context(), req.identity(), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.session.State())
}

// SignUp registers a new account and signs in.
//
// @Summary      Create an account
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      signUpRequest  true  "Name, email and password"
// @Success      201   {object}  viewmodel.SessionState
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/session/sign-up [post]
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.session.SignUp(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.session.State())
}

// SendCode requests a one-time login code.
//
// @Summary      Send a login code
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendCodeRequest  true  "Email or phone with country code"
// @Success      202   {object}  viewmodel.SessionState
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/code [post]
func (h *SessionHandler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.session.SendCode(c.Request().Context(), req.identity()); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, h.session.State())
}

// ResendCode repeats the last code request once the cooldown ran out.
//
// @Summary      Resend the login code
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  viewmodel.SessionState
// @Failure      409  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /v1/session/code/resend [post]
func (h *SessionHandler) ResendCode(c echo.Context) error {
	if err := h.session.ResendCode(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, h.session.State())
}

// VerifyCode signs in with a received code.
//
// @Summary      Verify a login code
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyCodeRequest  true  "Four digit code; identity defaults to the pending one"
// @Success      200   {object}  viewmodel.SessionState
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/code/verify [post]
func (h *SessionHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id := identityRequest{Email: req.Email, Phone: req.Phone, CountryCode: req.CountryCode}.identity()
	if err := h.session.CheckCode(c.Request().Context(), id, req.Code); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.session.State())
}

// CancelCode abandons a pending code login.
//
// @Summary      Cancel the code login
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  viewmodel.SessionState
// @Router       /v1/session/code [delete]
func (h *SessionHandler) CancelCode(c echo.Context) error {
	h.session.CancelCode()
	return c.JSON(http.StatusOK, h.session.State())
}

// Logout ends the session on the server. With local=true only the stored
// token is dropped and the server is not contacted.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Param        local  query     bool  false  "Forget the local session without calling the server"
// @Success      200    {object}  viewmodel.SessionState
// @Failure      503    {object}  map[string]string
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if local, _ := strconv.ParseBool(c.QueryParam("local")); local {
		h.session.ForgetLocal(ctx)
		return c.JSON(http.StatusOK, h.session.State())
	}
	if err := h.session.Logout(ctx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.session.State())
}
