package hints

import (
	"context"
	"fmt"

	"github.com/leetdaily/bot/internal/models"
)

// Hinter produces a short no-spoiler nudge for one of today's problems.
type Hinter struct {
	llm LLMClient
}

func NewHinter(llm LLMClient) *Hinter {
	return &Hinter{llm: llm}
}

func SystemPrompt() string {
	return "You are a coding-practice coach for a community solving one LeetCode " +
		"problem per difficulty each day. Give a single short paragraph that nudges " +
		"the reader toward the right approach. Never name the final algorithm or " +
		"data structure outright, never write code, and never reveal the answer."
}

func BuildUserPrompt(problem models.ProblemDescriptor) string {
	if problem.AcceptanceRate > 0 {
		return fmt.Sprintf(
			"Today's %s problem is #%d, %q (%.1f%% acceptance rate). Give one hint.",
			problem.Difficulty, problem.ID, problem.Title, problem.AcceptanceRate,
		)
	}
	return fmt.Sprintf(
		"Today's %s problem is #%d, %q. Give one hint.",
		problem.Difficulty, problem.ID, problem.Title,
	)
}

func (h *Hinter) Hint(ctx context.Context, problem models.ProblemDescriptor) (string, error) {
	hint, err := h.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(problem))
	if err != nil {
		return "", fmt.Errorf("generate hint: %w", err)
	}
	return hint, nil
}
