package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	cfg := DefaultClientConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return NewClient(cfg)
}

func TestGenerateResponseDTO_Text(t *testing.T) {
	jsonData := `{
		"candidates": [
			{
				"content": {
					"parts": [
						{"text": "تحليل الحضور جاهز"}
					]
				}
			}
		]
	}`

	var resp GenerateResponseDTO
	err := json.Unmarshal([]byte(jsonData), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "تحليل الحضور جاهز", resp.Text())

	assert.Empty(t, GenerateResponseDTO{}.Text())
}

func TestClient_GenerateText(t *testing.T) {
	var gotPath string
	var gotBody GenerateRequestDTO

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := GenerateResponseDTO{
			Candidates: []CandidateDTO{
				{Content: ContentDTO{Parts: []PartDTO{{Text: "نتيجة التحليل"}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	text, err := c.GenerateText(context.Background(), "حلل الحضور")
	require.NoError(t, err)
	assert.Equal(t, "نتيجة التحليل", text)

	assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "حلل الحضور", gotBody.Contents[0].Parts[0].Text)
}

func TestClient_GenerateText_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		resp := GenerateResponseDTO{
			Candidates: []CandidateDTO{
				{Content: ContentDTO{Parts: []PartDTO{{Text: "ok"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	text, err := c.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, attempts)
}

func TestClient_GenerateText_BadRequestNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_GenerateText_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponseDTO{})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.GenerateText(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyCandidates)
}
