package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.Endpoint = endpoint
	return cfg
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{
		Model:   "gpt-5",
		Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}},
	})
}

func TestChatClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-5", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, chatMessage{Role: "system", Content: "system prompt"}, req.Messages[0])
		assert.Equal(t, chatMessage{Role: "user", Content: "user prompt"}, req.Messages[1])
		assert.Nil(t, req.Temperature)

		writeCompletion(w, `{"tasks":[]}`)
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskDecompose,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"tasks":[]}`, resp.Text)
	assert.Equal(t, "gpt-5", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestChatClient_Generate_RequestOverrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Temperature)
		assert.InDelta(t, 0.3, *req.Temperature, 1e-9)
		assert.Equal(t, 256, req.MaxCompletionTokens)
		require.Len(t, req.Messages, 1)
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	temp, maxTok := 0.3, 256
	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskDecompose,
		UserPrompt:  "only user",
		Temperature: &temp,
		MaxTokens:   &maxTok,
	})
	require.NoError(t, err)
}

func TestChatClient_Generate_NotConfigured(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDecompose, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, calls.Load())
}

func TestChatClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{TaskDecompose: {TimeoutMs: 50}}

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChatClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.Tasks = map[TaskType]TaskConfig{TaskDecompose: {TimeoutMs: 1000}}

	client := NewChatClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChatClient_Generate_SingleAttemptOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestChatClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model":"gpt-5","choices":[]}`))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDecompose, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestChatClient_Generate_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":`))
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskDecompose, UserPrompt: "x"})

	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestChatClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewChatClient(testConfig(srv.URL), nil).Available(context.Background()))

	bad := testConfig(srv.URL)
	bad.APIKey = "sk-wrong"
	assert.False(t, NewChatClient(bad, nil).Available(context.Background()))

	none := testConfig(srv.URL)
	none.APIKey = ""
	assert.False(t, NewChatClient(none, nil).Available(context.Background()))
}

func TestChatClient_Available_Unreachable(t *testing.T) {
	client := NewChatClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, client.Available(context.Background()))
}

func TestChatClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	client := NewChatClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, TaskDecompose, captured.Task)
	assert.Equal(t, "gpt-5", captured.Model)
	assert.True(t, captured.Success)
	assert.Empty(t, captured.ErrorCode)
}

func TestChatClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{TaskDecompose: {TimeoutMs: 50}}

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}
	client := NewChatClient(cfg, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskDecompose,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
