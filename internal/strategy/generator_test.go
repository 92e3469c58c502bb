package strategy

import (
	"context"
	"testing"

	"github.com/alexanderramin/dealdesk/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	calls    int
	lastReq  llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "test"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }

type recordingFallbacks struct {
	reasons []string
}

func (r *recordingFallbacks) RecordFallback(reason string) { r.reasons = append(r.reasons, reason) }

func TestLLMGenerator_FallbackEqualsRuleBased(t *testing.T) {
	dc := baseContext(0.6, 90)
	dc.Deal.RiskSummary = "procurement review"
	want := BuildRuleBasedPlays(dc, DefaultTuning())

	tests := []struct {
		name   string
		client *mockLLMClient
		reason string
	}{
		{"provider down", &mockLLMClient{err: llm.ErrProviderUnavailable}, "unavailable"},
		{"timeout", &mockLLMClient{err: llm.ErrTimeout}, "timeout"},
		{"not json", &mockLLMClient{response: "Sorry, I cannot help."}, "invalid_output"},
		{"too few plays", &mockLLMClient{response: `{"plays":[{"title":"Only","steps":["a"]}]}`}, "invalid_output"},
		{"empty steps", &mockLLMClient{response: `{"plays":[{"title":"A","steps":[]},{"title":"B","steps":["b"]}]}`}, "invalid_output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingFallbacks{}
			gen := NewLLMGenerator(tt.client, NewRuleBasedGenerator(), rec)

			got, err := gen.Generate(context.Background(), dc)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, []string{tt.reason}, rec.reasons)
		})
	}
}

func TestLLMGenerator_NilClientFallsBack(t *testing.T) {
	dc := baseContext(0.6)
	gen := NewLLMGenerator(nil, NewRuleBasedGenerator(), nil)

	got, err := gen.Generate(context.Background(), dc)

	require.NoError(t, err)
	assert.Equal(t, BuildRuleBasedPlays(dc, DefaultTuning()), got)
}

func TestLLMGenerator_UsesModelPlays(t *testing.T) {
	client := &mockLLMClient{response: "```json\n" + `{"plays":[
		{"title":"Exec Sponsor Alignment","thesis":"t","trigger":"r","steps":["Email the sponsor today"],"expectedImpact":"i","confidence":1.4},
		{"title":"Exec Sponsor Alignment","thesis":"t2","trigger":"r2","steps":["Book a call"],"expectedImpact":"i2","confidence":0.1},
		{"title":"ROI Review!","thesis":"t3","trigger":"r3","steps":["Share ROI model"],"expectedImpact":"i3","confidence":0.6}
	]}` + "\n```"}
	gen := NewLLMGenerator(client, NewRuleBasedGenerator(), nil)
	dc := baseContext(0.6, 90)

	got, err := gen.Generate(context.Background(), dc)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ai-exec-sponsor-alignment", "ai-exec-sponsor-alignment-2", "ai-roi-review"}, playIDs(got))
	assert.Equal(t, 0.95, got[0].Confidence)
	assert.Equal(t, 0.35, got[1].Confidence)
	assert.Equal(t, 0.6, got[2].Confidence)

	assert.Equal(t, llm.TaskStrategy, client.lastReq.Task)
	assert.Equal(t, "strategy_plays", client.lastReq.SchemaName)
	assert.NotNil(t, client.lastReq.Schema)
	assert.Contains(t, client.lastReq.UserPrompt, "Northwind Expansion")
	assert.Contains(t, client.lastReq.UserPrompt, "Signal strength: 90")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "risk-front-load", slug("Risk Front-Load"))
	assert.Equal(t, "roi-review", slug("  ROI  Review! "))
	assert.Equal(t, "play", slug("!!!"))
}
