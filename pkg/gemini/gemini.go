package gemini

import (
	"context"
	"errors"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Fixed instruction for the correction call. The reply is used verbatim
// (lower-cased, trimmed) as the corrected command.
const correctionPrompt = "You correct voice commands for a pharmacy point of sale. " +
	"Map the utterance to exactly one of: search for X / add to cart / add N to cart / " +
	"remove from cart / select N / print bill / clear cart / close. " +
	"Reply with the command only, on a single line, nothing else."

type IGemini interface {
	CorrectCommand(ctx context.Context, utterance string) (string, error)
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) CorrectCommand(ctx context.Context, utterance string) (string, error) {
	if utterance == "" {
		return "", errors.New("empty utterance")
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(correctionPrompt)},
	}

	res, err := model.GenerateContent(ctx, genai.Text(utterance))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}
