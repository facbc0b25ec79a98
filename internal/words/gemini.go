package words

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hangman/internal/game"
)

const systemPrompt = `You are a hangman game assistant. Your job is to provide a single word for the hangman game.

Rules:
1. Return ONLY the word, nothing else
2. Word must be a common English word
3. No proper nouns, abbreviations, or hyphenated words
4. Choose words that are challenging but fair
5. Avoid overly obscure words

Return only the word in lowercase.`

// Gemini generates round words with the Gemini API.
type Gemini struct {
	APIKey string
	Model  string
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

// Word asks the model for one word in the difficulty's length range. Retries
// transient failures up to 3 attempts with linear backoff; the caller
// validates whatever comes back.
func (g *Gemini) Word(ctx context.Context, d game.Difficulty) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.8),
		MaxOutputTokens: ptrInt32(10),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	min, max := d.LengthRange()
	user := genai.Text(fmt.Sprintf("Give me a %s difficulty word for hangman, %d to %d letters long.", d, min, max))

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, user)
		if err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			}
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", errors.New("gemini: empty response")
		}
		return txt, nil
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
