package handler

import (
	"github.com/go-telegram/bot"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypePrefix, h.handleLogin)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mode", bot.MatchTypePrefix, h.handleMode)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, h.handleClear)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, h.handleLanguage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analyze", bot.MatchTypePrefix, h.handleAnalyze)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/save", bot.MatchTypePrefix, h.handleSaveRecord)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/records", bot.MatchTypePrefix, h.handleListRecords)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypePrefix, h.handleExportRecords)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/medicines", bot.MatchTypePrefix, h.handleMedicines)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/hospitals", bot.MatchTypePrefix, h.handleHospitals)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Language selection callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "lang_", bot.MatchTypePrefix, h.handleLanguageSelect)
}
