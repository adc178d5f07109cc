// Package client replica en Go el controlador del formulario de cadastro
// (web/static/script.js): mismo endpoint, mismos mensajes y mismos tres finales.
package client

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"pet-cadastro/internal/platform/httpclient"

	"github.com/google/uuid"
)

const (
	Endpoint = "/cadastro"

	MsgError       = "Erro ao cadastrar. Tente novamente."
	MsgUnreachable = "Não foi possível conectar ao servidor. Verifique se o backend está rodando."

	ClassSuccess = "mensagem sucesso"
	ClassError   = "mensagem erro"
)

// Fields son los campos del formulario, todos como strings (igual que FormData).
var Fields = []string{
	"nome_completo", "cpf", "email", "telefone", "endereco",
	"nome_pet", "especie", "raca", "data_nascimento", "observacoes",
}

var ErrInFlight = errors.New("client: submission already in flight")

type State int32

const (
	StateIdle State = iota
	StateInFlight
)

func (s State) String() string {
	if s == StateInFlight {
		return "in-flight"
	}
	return "idle"
}

// Outcome es lo que el formulario muestra en #mensagem.
type Outcome struct {
	Message   string
	Class     string
	ClearForm bool
	RequestID string
}

func (o Outcome) Success() bool { return o.Class == ClassSuccess }

type FormController struct {
	http  *httpclient.Client
	state atomic.Int32
}

// NewFormController recibe el cliente HTTP ya apuntando al servidor (BaseURL).
func NewFormController(c *httpclient.Client) *FormController {
	return &FormController{http: c}
}

func (f *FormController) State() State { return State(f.state.Load()) }

// Submit envía el formulario. Sólo devuelve error si ya hay un envío en curso;
// cualquier otra falla se refleja en el Outcome.
func (f *FormController) Submit(ctx context.Context, fields map[string]string) (Outcome, error) {
	if !f.state.CompareAndSwap(int32(StateIdle), int32(StateInFlight)) {
		return Outcome{}, ErrInFlight
	}
	defer f.state.Store(int32(StateIdle))

	reqID := uuid.NewString()
	headers := map[string]string{"X-Request-Id": reqID}

	var resp struct {
		Message string `json:"message"`
	}
	err := f.http.DoJSON(ctx, http.MethodPost, Endpoint, headers, fields, &resp)
	switch {
	case err == nil:
		return Outcome{Message: resp.Message, Class: ClassSuccess, ClearForm: true, RequestID: reqID}, nil
	case httpclient.IsTransport(err), httpclient.IsDecode(err):
		// como fetch: un 2xx sin JSON cae en el mismo catch que la falla de red
		return Outcome{Message: MsgUnreachable, Class: ClassError, RequestID: reqID}, nil
	default:
		// el body del error no se inspecciona
		return Outcome{Message: MsgError, Class: ClassError, RequestID: reqID}, nil
	}
}
