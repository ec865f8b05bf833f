// Package bot is the Discord command surface. It parses prefix commands,
// calls the tracker, and renders replies as embeds and image attachments.
package bot

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/leetdaily/bot/internal/hints"
	"github.com/leetdaily/bot/internal/models"
	"github.com/leetdaily/bot/internal/tracker"
)

type Bot struct {
	session *discordgo.Session
	service *tracker.Service
	hinter  *hints.Hinter
	prefix  string

	// Levels a `!leet` roll requests.
	dailyLevels []models.Difficulty
}

func New(token, prefix string, dailyLevels []models.Difficulty, service *tracker.Service, hinter *hints.Hinter) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		session:     session,
		service:     service,
		hinter:      hinter,
		prefix:      prefix,
		dailyLevels: dailyLevels,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("%s has connected to Discord", r.User.Username)
}

// contextOf is the per-command request context. Gateway callbacks do not
// carry one, and commands are short and bounded (a catalog request or a few
// queries), so no deadline is attached.
func contextOf(_ *discordgo.Session) context.Context {
	return context.Background()
}
