package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"goginie/models"
)

// HuggingFaceGenerator calls the HuggingFace inference API.
type HuggingFaceGenerator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFaceGenerator(apiKey, model string) (*HuggingFaceGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("huggingface: %w", models.ErrMissingConfiguration)
	}
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.3"
	}
	return &HuggingFaceGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api-inference.huggingface.co/models",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

func (g *HuggingFaceGenerator) Name() string { return "huggingface:" + g.model }

type hfRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens   int     `json:"max_new_tokens"`
		Temperature    float64 `json:"temperature"`
		ReturnFullText bool    `json:"return_full_text"`
	} `json:"parameters"`
}

// Generate wraps the planner instructions in the Mistral [INST] template.
func (g *HuggingFaceGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	var body hfRequest
	body.Inputs = "[INST] " + plannerSystemPrompt + "\n\n" + prompt + " [/INST]"
	body.Parameters.MaxNewTokens = hfMaxNewTokens
	body.Parameters.Temperature = temperature

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, g.baseURL+"/"+g.model, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := getJSON(ctx, g.httpClient, req, &out); err != nil {
		return "", fmt.Errorf("huggingface %s: %w", g.model, err)
	}
	if len(out) == 0 || out[0].GeneratedText == "" {
		return "", fmt.Errorf("huggingface %s: %w: empty generation", g.model, models.ErrMalformedResponse)
	}
	return out[0].GeneratedText, nil
}

const hfMaxNewTokens = 2048
