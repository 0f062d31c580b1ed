package handler

import (
	"github.com/crewdeck-dev/crewdeck/backend/internal/config"
	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/crewdeck-dev/crewdeck/backend/internal/repository"
	"github.com/crewdeck-dev/crewdeck/backend/internal/roster"
	"github.com/crewdeck-dev/crewdeck/backend/internal/swap"
	"github.com/crewdeck-dev/crewdeck/backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client
	converter     *roster.ConverterClient
	submitter     *swap.Submitter
	metrics       *metrics.Metrics

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	h := &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,
		converter:     roster.NewConverterClient(cfg.Roster.ConverterURL),
		metrics:       metrics.NewMetrics("crewdeck"),

		Mux: chi.NewRouter(),
	}
	h.submitter = swap.NewSubmitter(repo, h)

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Handle("/metrics", promhttp.Handler())

	// authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // any crew member may look up colleagues
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/duties", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyDuties)
			r.Route("/import", func(r chi.Router) {
				r.Use(h.preventInactiveCrew)
				r.Post("/", h.StageRosterImport)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Post("/confirm", h.ConfirmRosterImport)
					r.Delete("/", h.CancelRosterImport)
				})
			})
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.dutyInfo)
				r.Get("/", h.GetDuty)
			})
		})

		r.Route("/swap-requests", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMySwapRequests)
			r.With(h.preventInactiveCrew).Post("/batch", h.SubmitSwapBatch)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.swapRequestInfo)
				r.Post("/respond", h.RespondToSwapRequest)
				r.Post("/cancel", h.CancelSwapRequest)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
		})
	})
}
