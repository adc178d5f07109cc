package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-cadastro/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func form() map[string]string {
	return map[string]string{
		"nome_completo":   "Ana Silva",
		"cpf":             "123",
		"email":           "a@b.com",
		"telefone":        "999",
		"endereco":        "Rua X",
		"nome_pet":        "Rex",
		"especie":         "cão",
		"raca":            "Labrador",
		"data_nascimento": "2020-01-01",
		"observacoes":     "",
	}
}

func newController(t *testing.T, baseURL string) *FormController {
	t.Helper()
	c, err := httpclient.NewWithBaseURL(baseURL, 2*time.Second)
	require.NoError(t, err)
	return NewFormController(c)
}

func TestSubmit_Success(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, Endpoint, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Cliente e pet cadastrados com sucesso!"}`))
	}))
	defer ts.Close()

	out, err := newController(t, ts.URL).Submit(context.Background(), form())
	require.NoError(t, err)

	assert.True(t, out.Success())
	assert.Equal(t, "Cliente e pet cadastrados com sucesso!", out.Message)
	assert.Equal(t, ClassSuccess, out.Class)
	assert.True(t, out.ClearForm)
	assert.Equal(t, form(), got)
}

func TestSubmit_ServerErrorShowsGenericMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "detalle interno que no se muestra", http.StatusInternalServerError)
	}))
	defer ts.Close()

	out, err := newController(t, ts.URL).Submit(context.Background(), form())
	require.NoError(t, err)

	assert.Equal(t, MsgError, out.Message)
	assert.Equal(t, ClassError, out.Class)
	assert.False(t, out.ClearForm)
}

func TestSubmit_SuccessWithoutJSONBodyIsUnreachable(t *testing.T) {
	for _, body := range []string{"", "not json"} {
		t.Run("body="+body, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			out, err := newController(t, ts.URL).Submit(context.Background(), form())
			require.NoError(t, err)

			assert.Equal(t, MsgUnreachable, out.Message)
			assert.Equal(t, ClassError, out.Class)
			assert.False(t, out.ClearForm)
		})
	}
}

func TestSubmit_UnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	fc := newController(t, url)
	out, err := fc.Submit(context.Background(), form())
	require.NoError(t, err)

	assert.Equal(t, MsgUnreachable, out.Message)
	assert.Equal(t, ClassError, out.Class)
	assert.Equal(t, StateIdle, fc.State())
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-unblock
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer ts.Close()

	fc := newController(t, ts.URL)

	done := make(chan Outcome, 1)
	go func() {
		out, _ := fc.Submit(context.Background(), form())
		done <- out
	}()

	<-entered
	assert.Equal(t, StateInFlight, fc.State())

	_, err := fc.Submit(context.Background(), form())
	assert.ErrorIs(t, err, ErrInFlight)

	close(unblock)
	out := <-done
	assert.True(t, out.Success())
	assert.Equal(t, StateIdle, fc.State())
}
