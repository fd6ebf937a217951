package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/repository"
	"github.com/assistenzplus/backend/internal/utils"
)

func (h *Handler) GetAllUserInfo(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user list", users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username              string `json:"username" validate:"required"`
		FullName              string `json:"fullName" validate:"required"`
		Email                 string `json:"email" validate:"required,email"`
		Role                  string `json:"role" validate:"required,oneof=ADMIN EMPLOYEE"`
		NightPremiumEnabled   bool   `json:"nightPremiumEnabled"`
		SundayPremiumEnabled  bool   `json:"sundayPremiumEnabled"`
		HolidayPremiumEnabled bool   `json:"holidayPremiumEnabled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// the initial password is generated and mailed to the new employee
	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:              req.Username,
		PasswordHash:          string(hashedPassword),
		FullName:              req.FullName,
		Email:                 req.Email,
		Role:                  domain.Role(req.Role),
		NightPremiumEnabled:   req.NightPremiumEnabled,
		SundayPremiumEnabled:  req.SundayPremiumEnabled,
		HolidayPremiumEnabled: req.HolidayPremiumEnabled,
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "users_username_key":
				h.conflict(w, r, "username already exists")
			case pgErr.ConstraintName == "users_email_key":
				h.conflict(w, r, "email already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_user",
		To:   user.Email,
		Data: domain.CreateUserMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user created", user)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "user info", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email                 *string `json:"email" validate:"omitempty,email"`
		Role                  *string `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
		NightPremiumEnabled   *bool   `json:"nightPremiumEnabled"`
		SundayPremiumEnabled  *bool   `json:"sundayPremiumEnabled"`
		HolidayPremiumEnabled *bool   `json:"holidayPremiumEnabled"`
		IsActive              *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.NightPremiumEnabled != nil {
		user.NightPremiumEnabled = *req.NightPremiumEnabled
	}
	if req.SundayPremiumEnabled != nil {
		user.SundayPremiumEnabled = *req.SundayPremiumEnabled
	}
	if req.HolidayPremiumEnabled != nil {
		user.HolidayPremiumEnabled = *req.HolidayPremiumEnabled
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "user was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "user updated", user)
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "user was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(user.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmployeeHasShifts):
			h.conflict(w, r, "employee still has timesheet records and cannot be deleted")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "user deleted", nil)
}
