package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samadhi-app/record-service/internal/api/dto"
	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/domain"
	"github.com/samadhi-app/record-service/internal/service"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

const birthLayout = "2006-01-02"

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	transport auth.TokenTransport
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, transport auth.TokenTransport) *AuthHandler {
	return &AuthHandler{auth: authService, transport: transport}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.ID == "" || req.Password == "" {
		return apperrors.NewValidationError("id and pwd required")
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.ID, req.Password)
	if err != nil {
		return err
	}

	h.transport.Attach(c, token, exp)
	return c.JSON(dto.OK(user.ID))
}

// SignUp handles POST /auth/sign-up (multipart/form-data).
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	input, err := parseSignUpForm(c)
	if err != nil {
		return err
	}

	if _, err := h.auth.Register(c.Context(), input); err != nil {
		return err
	}
	return c.JSON(dto.OK("registered"))
}

// UpdateInfo handles PUT /auth/update (multipart/form-data, authenticated).
func (h *AuthHandler) UpdateInfo(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}

	input, err := parseUpdateForm(c)
	if err != nil {
		return err
	}

	if err := h.auth.UpdateInfo(c.Context(), principal.User.ID, input); err != nil {
		return err
	}
	return c.JSON(dto.OK("updated"))
}

// GetUserInfo handles GET /auth/user?userId=.
func (h *AuthHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return apperrors.NewValidationError("userId required")
	}

	user, err := h.auth.GetUserInfo(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.UserInfoFrom(user)))
}

func parseSignUpForm(c *fiber.Ctx) (service.RegisterInput, error) {
	var input service.RegisterInput

	input.ID = c.FormValue("id")
	input.Password = c.FormValue("pwd")
	input.Nickname = c.FormValue("nickname")
	if input.ID == "" || input.Password == "" || input.Nickname == "" {
		return input, apperrors.NewValidationError("id, pwd, nickname required")
	}

	gender, err := parseGender(c.FormValue("gender"))
	if err != nil {
		return input, err
	}
	input.Gender = gender

	birth, err := time.Parse(birthLayout, c.FormValue("birth"))
	if err != nil {
		return input, apperrors.NewValidationError("birth must be YYYY-MM-DD")
	}
	input.Birth = birth

	if v := c.FormValue("height"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return input, apperrors.NewValidationError("invalid height")
		}
		input.Height = float32(parsed)
	}
	if v := c.FormValue("weight"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return input, apperrors.NewValidationError("invalid weight")
		}
		input.Weight = float32(parsed)
	}

	if file, err := c.FormFile("profile"); err == nil && file != nil {
		reader, err := file.Open()
		if err != nil {
			return input, apperrors.NewInternalError(err)
		}
		input.Profile = reader
		input.ProfileContentType = file.Header.Get(fiber.HeaderContentType)
	}

	return input, nil
}

func parseUpdateForm(c *fiber.Ctx) (service.UpdateInput, error) {
	var input service.UpdateInput

	if v := c.FormValue("pwd"); v != "" {
		input.Password = &v
	}
	if v := c.FormValue("nickname"); v != "" {
		input.Nickname = &v
	}
	if v := c.FormValue("gender"); v != "" {
		gender, err := parseGender(v)
		if err != nil {
			return input, err
		}
		input.Gender = &gender
	}
	if v := c.FormValue("birth"); v != "" {
		birth, err := time.Parse(birthLayout, v)
		if err != nil {
			return input, apperrors.NewValidationError("birth must be YYYY-MM-DD")
		}
		input.Birth = &birth
	}
	if v := c.FormValue("height"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return input, apperrors.NewValidationError("invalid height")
		}
		height := float32(parsed)
		input.Height = &height
	}
	if v := c.FormValue("weight"); v != "" {
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return input, apperrors.NewValidationError("invalid weight")
		}
		weight := float32(parsed)
		input.Weight = &weight
	}

	if file, err := c.FormFile("profile"); err == nil && file != nil {
		reader, err := file.Open()
		if err != nil {
			return input, apperrors.NewInternalError(err)
		}
		input.Profile = reader
		input.ProfileContentType = file.Header.Get(fiber.HeaderContentType)
	}

	return input, nil
}

func parseGender(raw string) (domain.Gender, error) {
	switch domain.Gender(raw) {
	case domain.GenderFemale:
		return domain.GenderFemale, nil
	case domain.GenderMale:
		return domain.GenderMale, nil
	default:
		return "", apperrors.NewDomainError("VALIDATION_FAILED", "gender must be f or m", http.StatusBadRequest)
	}
}
