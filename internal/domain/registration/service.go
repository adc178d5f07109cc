package registration

import (
	"context"
	"errors"

	"pet-cadastro/internal/platform/logger"
	"pet-cadastro/internal/platform/pool"
)

// Recorder recibe el resultado de cada cadastro ("success" o el Kind del error).
type Recorder interface {
	ObserveRegistration(result string)
}

type Service struct {
	repo    Repository
	gate    Gate
	log     logger.Logger
	metrics Recorder
}

type Option func(*Service)

func WithGate(g Gate) Option { return func(s *Service) { s.gate = g } }

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

func WithRecorder(r Recorder) Option { return func(s *Service) { s.metrics = r } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Register ocupa un slot del pool y delega la transacción al repositorio.
// No valida campos: lo que la base rechace vuelve como *Error con su Kind.
func (s *Service) Register(ctx context.Context, sub Submission) (Result, error) {
	log := logger.FromContext(ctx, s.log)

	res, err := s.register(ctx, sub)
	if err != nil {
		kind := KindOf(err)
		s.observe(string(kind))
		log.Error("cadastro failed", map[string]any{
			"kind":  string(kind),
			"cpf":   maskTaxID(sub.Owner.TaxID),
			"error": err.Error(),
		})
		return Result{}, err
	}

	s.observe("success")
	log.Info("cadastro ok", map[string]any{
		"owner_id": res.OwnerID,
		"pet_id":   res.PetID,
	})
	return res, nil
}

func (s *Service) register(ctx context.Context, sub Submission) (Result, error) {
	if s.gate != nil {
		release, err := s.gate.Acquire(ctx)
		if err != nil {
			if errors.Is(err, pool.ErrQueueFull) {
				return Result{}, NewError(KindOverloaded, "acquire", err)
			}
			return Result{}, NewError(KindOf(err), "acquire", err)
		}
		defer release()
	}

	pet := sub.Pet
	pet.Notes = NotesOrNil(pet.Notes)

	res, err := s.repo.Register(ctx, sub.Owner, pet)
	if err != nil {
		return Result{}, NewError(KindOf(err), "insert", err)
	}
	return res, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveRegistration(result)
	}
}
