package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare object",
			text: `{"skills":["Go"]}`,
			want: `{"skills":["Go"]}`,
		},
		{
			name: "markdown fenced",
			text: "```json\n[\"Go\", \"Docker\"]\n```",
			want: `["Go", "Docker"]`,
		},
		{
			name: "wrapped in prose",
			text: `Sure! Here are the skills: ["Leadership", "Python"] Hope that helps.`,
			want: `["Leadership", "Python"]`,
		},
		{
			name: "array before object picks array",
			text: `["a", "b"] and then {"ignored": true}`,
			want: `["a", "b"]`,
		},
		{
			name: "nested braces",
			text: `prefix {"roadmap": {"stage": 1, "items": ["x"]}} suffix`,
			want: `{"roadmap": {"stage": 1, "items": ["x"]}}`,
		},
		{
			name: "braces inside strings",
			text: `{"note": "uses { and } and \" freely"}`,
			want: `{"note": "uses { and } and \" freely"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	for _, text := range []string{
		"no json here at all",
		"",
		`{"never": "closed"`,
		`{"bad": trailing,}`,
	} {
		_, err := ExtractJSON(text)
		assert.ErrorIsf(t, err, ErrMalformed, "input %q", text)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "gemini-2.0-flash")
	c.baseURL = srv.URL
	return c
}

func geminiReply(texts ...string) string {
	type p struct {
		Text string `json:"text"`
	}
	parts := make([]p, len(texts))
	for i, txt := range texts {
		parts[i] = p{Text: txt}
	}
	reply := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
	raw, _ := json.Marshal(reply)
	return string(raw)
}

func TestGenerateConcatenatesParts(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, geminiReply("first ", "second"))
	})

	text, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "first second", text)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "hello", gotBody.Contents[0].Parts[0].Text)
	assert.Empty(t, gotBody.Tools)
}

func TestGenerateAttachesImageAndSearchTool(t *testing.T) {
	var gotBody generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, geminiReply("ok"))
	})

	_, err := c.Generate(context.Background(), Request{
		Prompt:    "describe this",
		ImageMIME: "image/png",
		ImageData: []byte{0x89, 0x50, 0x4e, 0x47},
		UseSearch: true,
	})
	require.NoError(t, err)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", gotBody.Contents[0].Parts[1].InlineData.MIMEType)
	assert.NotEmpty(t, gotBody.Contents[0].Parts[1].InlineData.Data)
	assert.Len(t, gotBody.Tools, 1)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	_, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestGenerateNonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":429,"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), Request{Prompt: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateJSONUnwrapsFencedReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("```json\n[\"Go\", \"MongoDB\", \"Public Speaking\"]\n```"))
	})

	var skills []string
	require.NoError(t, c.GenerateJSON(context.Background(), Request{Prompt: "extract"}, &skills))
	assert.Equal(t, []string{"Go", "MongoDB", "Public Speaking"}, skills)
}

func TestGenerateJSONMalformedReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("I could not produce JSON for that."))
	})

	var skills []string
	err := c.GenerateJSON(context.Background(), Request{Prompt: "extract"}, &skills)
	assert.ErrorIs(t, err, ErrMalformed)
}
