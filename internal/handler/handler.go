package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/assistenzplus/backend/internal/config"
	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	admin := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// public signature endpoint for care recipients, authorised by token
	h.Mux.Route("/sign", func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Get("/{token}", h.GetSubmissionForSigning)
		r.Post("/{token}", h.SignSubmission)
	})

	// everything below requires a session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(admin).Post("/", h.CreateUser)
			r.With(admin).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(admin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(admin).Delete("/", h.DeleteUser)
				r.With(admin).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.CreateClient)
			r.Get("/", h.GetAllClients)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.clientInfo)
				r.Get("/", h.GetClient)
				r.Patch("/", h.UpdateClient)
				r.Delete("/", h.DeleteClient)
			})
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.GetHolidays)
			r.With(admin).Post("/", h.CreateHoliday)
			r.With(admin).Post("/generate", h.GenerateHolidays)
			r.With(admin).Delete("/{date}", h.DeleteHoliday)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(admin).Post("/", h.CreateShift)
			r.Get("/", h.GetShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.With(admin).Patch("/", h.UpdateShift)
				r.With(admin).Delete("/", h.DeleteShift)
				r.Post("/confirm", h.ConfirmShift)
				r.Post("/unconfirm", h.UnconfirmShift)
				r.Patch("/times", h.UpdateShiftTimes)
				r.With(admin).Patch("/override", h.OverrideShiftTimes)
			})
		})

		r.Route("/submissions", func(r chi.Router) {
			r.Post("/submit", h.SubmitMonth)
			r.With(admin).Get("/", h.GetSubmissions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(admin)
				r.Use(h.submissionInfo)
				r.Get("/", h.GetSubmission)
				r.Post("/request-signature", h.RequestRecipientSignature)
				r.Delete("/signatures/{employeeID}", h.WithdrawEmployeeSignature)
				r.Delete("/recipient-signature", h.WithdrawRecipientSignature)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(admin)
			r.Get("/monthly", h.GetMonthlyReport)
			r.Get("/monthly/csv", h.ExportMonthlyCSV)
			r.Get("/monthly/xlsx", h.ExportTimesheetXLSX)
			r.Get("/monthly/pdf", h.ExportTimesheetPDF)
			r.Get("/audit", h.GetAuditEntries)
		})
	})
}

// enqueueMail publishes a mail message onto the email queue consumed by the
// mail worker.
func (h *Handler) enqueueMail(message domain.MailMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
