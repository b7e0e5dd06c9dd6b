package handler

import (
	"github.com/go-telegram/bot"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
	"github.com/arogya-mitra/arogyabot/internal/service"
	"github.com/arogya-mitra/arogyabot/internal/session"
	"github.com/arogya-mitra/arogyabot/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	sessions *session.Manager
	users    domain.UserStore
	records  domain.RecordStore
	catalog  *service.CatalogService
	notifier *telegram.Notifier
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Sessions *session.Manager
	Users    domain.UserStore
	Records  domain.RecordStore
	Catalog  *service.CatalogService
	Notifier *telegram.Notifier
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		sessions: deps.Sessions,
		users:    deps.Users,
		records:  deps.Records,
		catalog:  deps.Catalog,
		notifier: deps.Notifier,
	}
}
