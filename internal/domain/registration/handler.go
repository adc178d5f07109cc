package registration

import (
	"encoding/json"
	"net/http"

	"pet-cadastro/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	MsgSuccess     = "Cliente e pet cadastrados com sucesso!"
	MsgServerError = "Erro no servidor ao cadastrar."

	maxBodyBytes = 1 << 20 // 1MB
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Post("/cadastro", createRegistrationHandler(svc, log))
}

// createRegistrationRequest es el formulario plano del cliente (todos strings).
type createRegistrationRequest struct {
	FullName  string `json:"nome_completo"`
	TaxID     string `json:"cpf"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	Address   string `json:"endereco"`
	PetName   string `json:"nome_pet"`
	Species   string `json:"especie"`
	Breed     string `json:"raca"`
	BirthDate string `json:"data_nascimento"` // YYYY-MM-DD
	// Opcional. Ausente o "" se guarda como NULL.
	Notes *string `json:"observacoes,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (req createRegistrationRequest) toSubmission() Submission {
	return Submission{
		Owner: Owner{
			FullName: req.FullName,
			TaxID:    req.TaxID,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		},
		Pet: Pet{
			Name:      req.PetName,
			Species:   req.Species,
			Breed:     req.Breed,
			BirthDate: req.BirthDate,
			Notes:     req.Notes,
		},
	}
}

// createRegistrationHandler godoc
// @Summary Cadastrar dono y mascota
// @Description Inserta el dono (donos) y su mascota (pets) en una sola transacción. Cualquier falla devuelve el mismo error genérico; nunca se exponen detalles del driver.
// @Tags cadastro
// @Accept json
// @Produce json
// @Param payload body createRegistrationRequest true "Formulario plano; observacoes es opcional"
// @Success 201 {object} messageResponse
// @Failure 500 {string} string "Erro no servidor ao cadastrar."
// @Failure 503 {string} string "Erro no servidor ao cadastrar. (cola del pool llena)"
// @Router /cadastro [post]
func createRegistrationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.With(map[string]any{"request_id": chimw.GetReqID(r.Context())})

		var req createRegistrationRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			// JSON inválido también termina en el error genérico.
			svc.observe(string(KindValidation))
			reqLog.Warn("cadastro: invalid json", map[string]any{
				"kind":  string(KindValidation),
				"error": err.Error(),
			})
			http.Error(w, MsgServerError, http.StatusInternalServerError)
			return
		}

		ctx := logger.WithContext(r.Context(), reqLog)
		if _, err := svc.Register(ctx, req.toSubmission()); err != nil {
			if KindOf(err) == KindOverloaded {
				w.Header().Set("Retry-After", "1")
				http.Error(w, MsgServerError, http.StatusServiceUnavailable)
				return
			}
			http.Error(w, MsgServerError, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{Message: MsgSuccess})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
