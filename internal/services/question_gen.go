package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Fezze07/JustUS/internal/config"
)

// QuestionGenerator produces one generated question from a stem. It is a
// black-box collaborator: callers must survive any error or malformed
// output with a placeholder, never fail the request.
type QuestionGenerator interface {
	Generate(ctx context.Context, stem string) (string, error)
}

// OllamaGenerator asks a local Ollama model for question text. The model
// streams NDJSON fragments; the full response is accumulated and then
// parsed as a single {"question": …} object.
type OllamaGenerator struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaGenerator creates a generator from config
func NewOllamaGenerator(cfg config.OllamaConfig) *OllamaGenerator {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OllamaGenerator{
		url:    cfg.URL,
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
	}
}

type ollamaRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type ollamaChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type generatedQuestion struct {
	Question string `json:"question"`
}

// Generate requests question text starting with the given stem
func (g *OllamaGenerator) Generate(ctx context.Context, stem string) (string, error) {
	prompt := fmt.Sprintf(`
	Rispondi SOLO con JSON valido.
	Formato ESATTO:
	{"question":"TESTO DELLA DOMANDA?"}
	Regole:
	- Un solo campo: question
	- Deve iniziare con: %s
	- Domanda rivolta a una coppia
	- NON fare domande a cui la coppia non puo rispondere scegliendo uno dei due
	- NON scrivere mai i 3 puntini a fine frase, usa il punto di domanda = ?
	- NIENTE spiegazioni
	- NIENTE testo fuori dal JSON
	`, stem)

	body, err := json.Marshal(ollamaRequest{
		Model:       g.model,
		Prompt:      prompt,
		Temperature: 0.9,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation request failed: status %d", resp.StatusCode)
	}

	// Accumulate the streamed fragments, then parse the whole thing.
	var jsonText strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		var chunk ollamaChunk
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		jsonText.WriteString(chunk.Response)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read generation stream: %w", err)
	}

	return parseGeneratedQuestion(jsonText.String())
}

// parseGeneratedQuestion extracts the question text from the model's raw
// output, tolerating backtick fences around the JSON
func parseGeneratedQuestion(raw string) (string, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "`")
	var out generatedQuestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("failed to parse generated question: %w", err)
	}
	if out.Question == "" {
		return "", fmt.Errorf("generated question is empty")
	}
	return out.Question, nil
}
