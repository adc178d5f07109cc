package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"pet-cadastro/internal/domain/registration"
)

var (
	ErrOffline      = errors.New("memory store offline")
	ErrDuplicateCPF = errors.New("duplicate cpf")
	ErrInvalidDate  = errors.New("data_nascimento must be YYYY-MM-DD")
)

// RegistrationRepo imita las tablas donos/pets con las mismas reglas que la base:
// cpf único, data_nascimento tipo DATE y todo-o-nada por cadastro.
type RegistrationRepo struct {
	mu      sync.RWMutex
	offline bool

	owners  map[int64]registration.Owner
	byCPF   map[string]int64
	pets    map[int64]registration.Pet
	ownerSq int64
	petSq   int64
}

func NewRegistrationRepo() *RegistrationRepo {
	return &RegistrationRepo{
		owners: make(map[int64]registration.Owner),
		byCPF:  make(map[string]int64),
		pets:   make(map[int64]registration.Pet),
	}
}

// SetOffline simula la base caída (modo dev / tests).
func (r *RegistrationRepo) SetOffline(offline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offline = offline
}

func (r *RegistrationRepo) Register(ctx context.Context, o registration.Owner, p registration.Pet) (registration.Result, error) {
	if err := ctx.Err(); err != nil {
		return registration.Result{}, registration.NewError(registration.KindConnectivity, "begin", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.offline {
		return registration.Result{}, registration.NewError(registration.KindConnectivity, "begin", ErrOffline)
	}

	// Transacción: se arma todo en variables locales y sólo se publica al final.
	if _, dup := r.byCPF[o.TaxID]; dup {
		return registration.Result{}, registration.NewError(registration.KindConflict, "insert donos", ErrDuplicateCPF)
	}
	ownerID := r.ownerSq + 1
	o.ID = ownerID

	if _, err := time.Parse("2006-01-02", p.BirthDate); err != nil {
		// rollback implícito: no se tocó ningún mapa
		return registration.Result{}, registration.NewError(registration.KindValidation, "insert pets",
			fmt.Errorf("%w: %q", ErrInvalidDate, p.BirthDate))
	}
	petID := r.petSq + 1
	p.ID = petID
	p.OwnerID = ownerID
	p.Notes = registration.NotesOrNil(p.Notes)

	// commit
	r.ownerSq = ownerID
	r.petSq = petID
	r.owners[ownerID] = o
	r.byCPF[o.TaxID] = ownerID
	r.pets[petID] = p

	return registration.Result{OwnerID: ownerID, PetID: petID}, nil
}

// Owners devuelve una copia ordenada por id (para tests/dev).
func (r *RegistrationRepo) Owners() []registration.Owner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Owner, 0, len(r.owners))
	for _, o := range r.owners {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *RegistrationRepo) Pets() []registration.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
