package Summary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"CareBridge/Models"
)

type fakeModels struct {
	model  string
	prompt string
	temp   float32
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if config != nil && config.Temperature != nil {
		f.temp = *config.Temperature
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

var tasks = []Models.Task{
	{Title: "Morning Vitals Check", Status: Models.TaskCompleted, Comments: "BP 120/80"},
	{Title: "Medication Administration", Status: Models.TaskPending},
}

func TestShiftPrompt(t *testing.T) {
	p := ShiftPrompt("Dr. Chinedu Okafor", "Chief Robert Thompson", tasks)

	assert.Contains(t, p, "Staff Name: Dr. Chinedu Okafor\n")
	assert.Contains(t, p, "Client Name: Chief Robert Thompson\n")
	assert.Contains(t, p, "- Morning Vitals Check: completed (BP 120/80)\n- Medication Administration: pending (No specific notes)")
	assert.Contains(t, p, "2-paragraph summary")
}

func TestGenerateShiftSummary(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Client remained stable.")}
	g := newGemini(fake, "")

	text, err := g.GenerateShiftSummary(context.Background(), "Amina Yusuf", "Alhaji Musa Chen", tasks)
	require.NoError(t, err)
	assert.Equal(t, "Client remained stable.", text)
	assert.Equal(t, DefaultModel, fake.model)
	assert.InDelta(t, 0.6, fake.temp, 1e-6)
	assert.Contains(t, fake.prompt, "Staff Name: Amina Yusuf")
}

func TestGenerateShiftSummaryErrors(t *testing.T) {
	upstream := errors.New("quota exceeded")
	g := newGemini(&fakeModels{err: upstream}, "gemini-custom")
	assert.Equal(t, "gemini-custom", g.Model())

	_, err := g.GenerateShiftSummary(context.Background(), "a", "b", nil)
	assert.ErrorIs(t, err, upstream)

	empty := newGemini(&fakeModels{resp: &genai.GenerateContentResponse{}}, "")
	text, err := empty.GenerateShiftSummary(context.Background(), "a", "b", nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
