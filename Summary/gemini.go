// Package Summary drafts shift handover summaries with Google's Gemini API.
package Summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"CareBridge/Models"
)

const DefaultModel = "gemini-3-flash-preview"

var ErrMissingAPIKey = errors.New("gemini API key is missing")

// generator is the slice of *genai.Models the summarizer calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements Workflow.Summarizer.
type Gemini struct {
	models      generator
	model       string
	temperature float32
}

// NewGemini creates a client for apiKey. An empty model selects DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models generator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model, temperature: 0.6}
}

func (g *Gemini) Model() string { return g.model }

// GenerateShiftSummary returns the generated text as is; blank output and
// fallbacks are the caller's concern.
func (g *Gemini) GenerateShiftSummary(ctx context.Context, staffName, clientName string, tasks []Models.Task) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(ShiftPrompt(staffName, clientName, tasks)),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// ShiftPrompt builds the clinical summary prompt, one line per task.
func ShiftPrompt(staffName, clientName string, tasks []Models.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		notes := t.Comments
		if notes == "" {
			notes = "No specific notes"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", t.Title, t.Status, notes))
	}

	var b strings.Builder
	b.WriteString("Generate a professional clinical shift summary for a healthcare worker in Nigeria.\n")
	fmt.Fprintf(&b, "Staff Name: %s\n", staffName)
	fmt.Fprintf(&b, "Client Name: %s\n", clientName)
	b.WriteString("Tasks Completed/Notes:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nWrite a cohesive 2-paragraph summary highlighting patient stability, key interventions, ")
	b.WriteString("and any recommendations for the next shift. Use a professional tone suitable for a medical record.")
	return b.String()
}
