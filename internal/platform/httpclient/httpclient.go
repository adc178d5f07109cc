package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBodyBytes = 1 << 20 // 1MB

var (
	ErrNilClient   = errors.New("httpclient: nil client")
	ErrEmptyURL    = errors.New("httpclient: empty url")
	ErrNeedBaseURL = errors.New("httpclient: relative path requires BaseURL")
)

// Client es el *http.Client que usa el formulario (y el CLI) para hablar con el servidor.
type Client struct {
	HTTP    *http.Client
	BaseURL *url.URL // si se define, DoJSON acepta paths relativos
}

// New crea un Client. timeout <= 0 deja el request sin timeout propio
// (igual que fetch en el navegador); el ctx sigue mandando.
func New(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: max(timeout, 0)}}
}

// NewWithBaseURL crea un Client apuntando a baseURL (p.ej. http://localhost:3000).
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	c.BaseURL = u
	return c, nil
}

// HTTPError: el servidor respondió, pero no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// TransportError: el request no llegó o no hubo respuesta (servidor caído, DNS, reset).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "httpclient: transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport indica si err es una falla de red (no una respuesta del servidor).
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// DecodeError: respuesta 2xx cuyo body no es el JSON esperado (vacío o inválido).
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("httpclient: unmarshal json (status=%d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecode indica si err es un body 2xx que no se pudo decodificar.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// DoJSON manda in como JSON y decodifica la respuesta 2xx en out.
// non-2xx => *HTTPError; falla de red => *TransportError; body 2xx ilegible => *DecodeError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return ErrNilClient
	}

	req, err := c.newRequest(ctx, method, pathOrURL, headers, in)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	return readResponse(resp, out)
}

func (c *Client) newRequest(ctx context.Context, method, pathOrURL string, headers map[string]string, in any) (*http.Request, error) {
	target, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if k = strings.TrimSpace(k); k != "" {
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

func readResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode/100 != 2 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return &DecodeError{StatusCode: resp.StatusCode, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", ErrEmptyURL
	}

	ref, err := url.Parse(pathOrURL)
	if err != nil {
		return "", fmt.Errorf("httpclient: parse url: %w", err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if c.BaseURL == nil {
		return "", ErrNeedBaseURL
	}
	// "/cadastro" y "cadastro" cuelgan ambos del path base
	ref.Path = strings.TrimLeft(ref.Path, "/")
	return c.BaseURL.ResolveReference(ref).String(), nil
}
