package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fezze07/JustUS/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedQuestion(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain json", `{"question":"Chi dei due russa di piu?"}`, "Chi dei due russa di piu?", false},
		{"backtick fenced", "```{\"question\":\"Chi cucina meglio?\"}```", "Chi cucina meglio?", false},
		{"surrounding whitespace", "  {\"question\":\"Chi guida peggio?\"}\n", "Chi guida peggio?", false},
		{"empty question", `{"question":""}`, "", true},
		{"not json", "non lo so", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseGeneratedQuestion(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOllamaGeneratorAccumulatesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		// NDJSON stream split mid-token, as the model actually emits it
		fmt.Fprintln(w, `{"response":"{\"question\":\"Chi "}`)
		fmt.Fprintln(w, `{"response":"ama di piu "}`)
		fmt.Fprintln(w, `{"response":"i gatti?\"}","done":true}`)
	}))
	defer srv.Close()

	gen := NewOllamaGenerator(config.OllamaConfig{URL: srv.URL, Model: "test"})

	got, err := gen.Generate(context.Background(), "Chi ama di piu")
	require.NoError(t, err)
	assert.Equal(t, "Chi ama di piu i gatti?", got)
}

func TestOllamaGeneratorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewOllamaGenerator(config.OllamaConfig{URL: srv.URL, Model: "test"})

	_, err := gen.Generate(context.Background(), "Chi")
	assert.Error(t, err)
}
