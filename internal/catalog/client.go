package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/leetdaily/bot/internal/models"
)

const defaultBaseURL = "https://leetcode.com"

// problemCacheTTL bounds how often the full problem list is re-fetched.
// Selecting three difficulties reuses one fetch instead of hitting the
// API three times.
const problemCacheTTL = 5 * time.Minute

// Candidate is one problem from the external catalog, annotated with the
// caller's solved status and the paid-tier flag.
type Candidate struct {
	ID             int64
	Title          string
	TitleSlug      string
	AcceptanceRate float64
	Difficulty     models.Difficulty
	PaidOnly       bool
	Solved         bool
}

// URL returns the public problem page for the candidate.
func (c Candidate) URL() string {
	return fmt.Sprintf("%s/problems/%s/", defaultBaseURL, c.TitleSlug)
}

// Client fetches the problem catalog from the LeetCode REST API. The
// session cookie scopes the solved-status field to the community account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	session    string

	mu        sync.Mutex
	cached    []Candidate
	lastFetch time.Time
}

func NewClient(session string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		session:    session,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(session, baseURL string) *Client {
	c := NewClient(session)
	c.baseURL = baseURL
	return c
}

// API response shapes for /api/problems/algorithms/.
type problemListResponse struct {
	StatStatusPairs []statStatusPair `json:"stat_status_pairs"`
}

type statStatusPair struct {
	Stat struct {
		FrontendQuestionID int64  `json:"frontend_question_id"`
		QuestionTitle      string `json:"question__title"`
		QuestionTitleSlug  string `json:"question__title_slug"`
		TotalAcs           int64  `json:"total_acs"`
		TotalSubmitted     int64  `json:"total_submitted"`
	} `json:"stat"`
	Status     *string `json:"status"`
	Difficulty struct {
		Level int `json:"level"`
	} `json:"difficulty"`
	PaidOnly bool `json:"paid_only"`
}

// FetchCandidates returns the free-tier, not-yet-solved problems at the
// given difficulty level. The returned slice may be empty; that is not an
// error.
func (c *Client) FetchCandidates(ctx context.Context, level models.Difficulty) ([]Candidate, error) {
	all, err := c.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, cand := range all {
		if cand.Difficulty != level || cand.PaidOnly || cand.Solved {
			continue
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

func (c *Client) fetchAll(ctx context.Context) ([]Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.lastFetch) < problemCacheTTL {
		return c.cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/problems/algorithms/", nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Referer", c.baseURL)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request returned %s", resp.Status)
	}

	var listResp problemListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("unmarshal catalog response: %w", err)
	}

	candidates := make([]Candidate, 0, len(listResp.StatStatusPairs))
	for _, pair := range listResp.StatStatusPairs {
		difficulty := models.Difficulty(pair.Difficulty.Level)
		if !difficulty.Valid() {
			log.Printf("Catalog: skipping problem %d with unknown difficulty level %d",
				pair.Stat.FrontendQuestionID, pair.Difficulty.Level)
			continue
		}

		var rate float64
		if pair.Stat.TotalSubmitted > 0 {
			rate = roundRate(float64(pair.Stat.TotalAcs) / float64(pair.Stat.TotalSubmitted) * 100)
		}

		candidates = append(candidates, Candidate{
			ID:             pair.Stat.FrontendQuestionID,
			Title:          pair.Stat.QuestionTitle,
			TitleSlug:      pair.Stat.QuestionTitleSlug,
			AcceptanceRate: rate,
			Difficulty:     difficulty,
			PaidOnly:       pair.PaidOnly,
			Solved:         pair.Status != nil && *pair.Status == "ac",
		})
	}

	c.cached = candidates
	c.lastFetch = time.Now()
	return candidates, nil
}

// roundRate rounds an acceptance rate to two decimal places.
func roundRate(rate float64) float64 {
	return float64(int64(rate*100+0.5)) / 100
}
