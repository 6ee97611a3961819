package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
)

type AIService struct {
	client *openai.Client
}

// SuggestedTask is a task draft extracted from free text. Nothing is
// persisted; the client decides which drafts become tasks.
type SuggestedTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasks analyzes text and extracts task drafts using OpenAI GPT
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Today's date: %s

Text:
%s

Return a JSON array of the extracted tasks in this exact shape:
[
  {
    "title": "short task title",
    "description": "details of the task",
    "priority": "low, medium or high",
    "deadline": "due date as YYYY-MM-DD, or null if no deadline is mentioned"
  }
]

Rules:
- Return an empty array [] if the text contains no tasks
- Convert relative dates ("tomorrow", "next week") to concrete YYYY-MM-DD dates
- Return only the JSON, no explanatory text`, today, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []SuggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	valid := sanitizeSuggestions(tasks)
	if len(valid) > constants.MaxSuggestedTasks {
		valid = valid[:constants.MaxSuggestedTasks]
	}

	return valid, nil
}

// sanitizeSuggestions drops blank titles, coerces unknown priorities to
// medium, and clears deadlines that are malformed or already past.
func sanitizeSuggestions(tasks []SuggestedTask) []SuggestedTask {
	today := time.Now().Format("2006-01-02")
	valid := make([]SuggestedTask, 0, len(tasks))

	for _, task := range tasks {
		if strings.TrimSpace(task.Title) == "" {
			continue
		}

		if !models.ValidPriority(models.TaskPriority(task.Priority)) {
			task.Priority = string(models.PriorityMedium)
		}

		if task.Deadline != nil {
			if _, err := time.Parse("2006-01-02", *task.Deadline); err != nil || *task.Deadline < today {
				task.Deadline = nil
			}
		}

		valid = append(valid, task)
	}

	return valid
}
