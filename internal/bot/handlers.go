package bot

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/leetdaily/bot/internal/charts"
	"github.com/leetdaily/bot/internal/models"
	"github.com/leetdaily/bot/internal/tracker"
)

const solvedUsage = "Usage: %ssolved <problem_id|difficulty> <percentile>\n" +
	"Ensure the problem is one of today's, and that your percentile is between 0 and 100."

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	command, args, ok := parseCommand(m.Content, b.prefix)
	if !ok {
		return
	}

	switch command {
	case "leet":
		b.handleLeet(s, m)
	case "solved":
		b.handleSolved(s, m, args)
	case "unsolve":
		b.handleUnsolve(s, m, args)
	case "leaderboard":
		b.handleLeaderboard(s, m)
	case "progress":
		b.handleProgress(s, m)
	case "hint":
		b.handleHint(s, m, args)
	}
}

// parseCommand splits a prefixed message into a command and its arguments.
func parseCommand(content, prefix string) (string, []string, bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

func (b *Bot) handleLeet(s *discordgo.Session, m *discordgo.MessageCreate) {
	selected, err := b.service.SelectDaily(contextOf(s), b.dailyLevels)
	if err != nil {
		log.Printf("Daily selection failed: %v", err)
		b.reply(s, m, "Could not fetch today's problems from LeetCode. Try again in a bit.")
		return
	}
	if len(selected) == 0 {
		b.reply(s, m, "LeetCode returned no candidates for any requested difficulty today.")
		return
	}

	embed := dailyEmbed(selected, m.Author.Mention())
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("Failed to send daily embed: %v", err)
	}
}

// dailyEmbed renders the selection as one embed with a field per level.
func dailyEmbed(selected map[models.Difficulty]models.ProblemDescriptor, mention string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Today's LeetCode Problems",
		Description: fmt.Sprintf("Here are today's problems, %s:", mention),
		Color:       0x3498db,
	}
	for _, level := range models.AllDifficulties() {
		problem, ok := selected[level]
		if !ok {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s [#%d] (%.2f%% acceptance rate)", level, problem.ID, problem.AcceptanceRate),
			Value: fmt.Sprintf("[%s](%s)", problem.Title, problem.URL),
		})
	}
	return embed
}

func (b *Bot) handleSolved(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		b.reply(s, m, fmt.Sprintf("Error: expected two arguments.\n\n"+solvedUsage, b.prefix))
		return
	}

	userID, ok := b.authorID(s, m)
	if !ok {
		return
	}

	record, err := b.service.SubmitScore(contextOf(s), userID, m.Author.Username, args[0], args[1])
	if err != nil {
		b.replyError(s, m, err)
		return
	}

	b.reply(s, m, fmt.Sprintf("Successfully added problem %d with %.1f%% performance.",
		record.ProblemID, record.Percentile))
}

func (b *Bot) handleUnsolve(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) != 1 {
		b.reply(s, m, fmt.Sprintf("Usage: %sunsolve <difficulty>", b.prefix))
		return
	}

	userID, ok := b.authorID(s, m)
	if !ok {
		return
	}

	problemID, err := b.service.RemoveScore(contextOf(s), userID, args[0])
	if err != nil {
		b.replyError(s, m, err)
		return
	}

	b.reply(s, m, fmt.Sprintf("Removed your score for problem %d.", problemID))
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, m *discordgo.MessageCreate) {
	entries, err := b.service.Leaderboard(contextOf(s))
	if err != nil {
		log.Printf("Leaderboard query failed: %v", err)
		b.reply(s, m, "Could not load the leaderboard.")
		return
	}

	png, err := charts.RenderLeaderboard(entries)
	if err != nil {
		log.Printf("Leaderboard chart failed: %v", err)
		b.reply(s, m, "Could not render the leaderboard chart.")
		return
	}
	b.sendPNG(s, m, "leaderboard.png", png)
}

func (b *Bot) handleProgress(s *discordgo.Session, m *discordgo.MessageCreate) {
	userID, ok := b.authorID(s, m)
	if !ok {
		return
	}

	series, err := b.service.Progress(contextOf(s), userID)
	if err != nil {
		log.Printf("Progress query failed: %v", err)
		b.reply(s, m, "Could not load your progress.")
		return
	}

	png, err := charts.RenderProgress(series)
	if err != nil {
		log.Printf("Progress chart failed: %v", err)
		b.reply(s, m, "Could not render your progress chart.")
		return
	}
	b.sendPNG(s, m, "progress.png", png)
}

func (b *Bot) handleHint(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if b.hinter == nil {
		b.reply(s, m, "Hints are not enabled.")
		return
	}
	if len(args) != 1 {
		b.reply(s, m, fmt.Sprintf("Usage: %shint <difficulty>", b.prefix))
		return
	}

	level, ok := models.ParseDifficulty(args[0])
	if !ok {
		b.reply(s, m, fmt.Sprintf("Error: %q is not a difficulty. Use easy, medium or hard.", args[0]))
		return
	}

	descriptors, err := b.service.DailyDescriptors(contextOf(s))
	if err != nil {
		log.Printf("Daily descriptor lookup failed: %v", err)
		b.reply(s, m, "Could not look up today's problems.")
		return
	}
	problem, ok := descriptors[level]
	if !ok {
		b.reply(s, m, fmt.Sprintf("There is no %s problem today.", level))
		return
	}

	hint, err := b.hinter.Hint(contextOf(s), problem)
	if err != nil {
		log.Printf("Hint generation failed: %v", err)
		b.reply(s, m, "Could not generate a hint right now.")
		return
	}
	b.reply(s, m, fmt.Sprintf("Hint for %s (#%d): %s", problem.Title, problem.ID, hint))
}

// replyError maps tracker errors to user-facing messages, echoing usage for
// validation failures.
func (b *Bot) replyError(s *discordgo.Session, m *discordgo.MessageCreate, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidInput),
		errors.Is(err, tracker.ErrOutOfRange),
		errors.Is(err, tracker.ErrInvalidDifficulty),
		errors.Is(err, tracker.ErrNotTodaysProblem):
		b.reply(s, m, fmt.Sprintf("Error: %s\n\n"+solvedUsage, err.Error(), b.prefix))
	default:
		log.Printf("Command failed: %v", err)
		b.reply(s, m, "Something went wrong. Try again in a bit.")
	}
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, m.Author.Mention()+" "+text); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

func (b *Bot) sendPNG(s *discordgo.Session, m *discordgo.MessageCreate, name string, png []byte) {
	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Files: []*discordgo.File{
			{Name: name, ContentType: "image/png", Reader: bytes.NewReader(png)},
		},
	})
	if err != nil {
		log.Printf("Failed to send %s: %v", name, err)
	}
}

// authorID parses the platform's string user id into the ledger's integer
// identity.
func (b *Bot) authorID(s *discordgo.Session, m *discordgo.MessageCreate) (int64, bool) {
	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		log.Printf("Unparseable author id %q: %v", m.Author.ID, err)
		b.reply(s, m, "Could not read your user id.")
		return 0, false
	}
	return userID, true
}
