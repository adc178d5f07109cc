package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"pet-cadastro/internal/domain/registration"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertOwnerSQL = `
		INSERT INTO donos (nome_completo, cpf, email, telefone, endereco)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	insertPetSQL = `
		INSERT INTO pets (id_dono, nome_pet, especie, raca, data_nascimento, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
)

// TxBeginner lo cumplen *pgxpool.Pool y pgxmock.PgxPoolIface.
// Begin toma una conexión del pool; Commit/Rollback la devuelven.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type RegistrationRepo struct {
	db TxBeginner
}

func NewRegistrationRepo(db TxBeginner) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

func (r *RegistrationRepo) Register(ctx context.Context, o registration.Owner, p registration.Pet) (registration.Result, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return registration.Result{}, classify("begin", err)
	}

	res, err := insertOwnerAndPet(ctx, tx, o, p)
	if err != nil {
		rollback(ctx, tx)
		return registration.Result{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		rollback(ctx, tx)
		return registration.Result{}, classify("commit", err)
	}
	return res, nil
}

func insertOwnerAndPet(ctx context.Context, tx pgx.Tx, o registration.Owner, p registration.Pet) (registration.Result, error) {
	var res registration.Result

	if err := tx.QueryRow(ctx, insertOwnerSQL,
		o.FullName,
		o.TaxID,
		o.Email,
		o.Phone,
		o.Address,
	).Scan(&res.OwnerID); err != nil {
		return res, classify("insert donos", err)
	}

	if err := tx.QueryRow(ctx, insertPetSQL,
		res.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		p.BirthDate,
		p.NotesArg(),
	).Scan(&res.PetID); err != nil {
		return res, classify("insert pets", err)
	}

	return res, nil
}

// rollback usa un ctx sin cancelación: si el request se cortó igual hay que liberar la tx.
func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(context.WithoutCancel(ctx))
}

// classify traduce errores de pgx a registration.Kind.
func classify(op string, err error) error {
	return registration.NewError(kindOf(err), op, err)
}

func kindOf(err error) registration.Kind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return registration.KindConflict
		case strings.HasPrefix(pgErr.Code, "23"), strings.HasPrefix(pgErr.Code, "22"):
			// integrity constraint / data exception (fecha inválida, NOT NULL, FK)
			return registration.KindValidation
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return registration.KindConnectivity
		}
		return registration.KindUnknown
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return registration.KindConnectivity
	}
	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) {
		return registration.KindConnectivity
	}
	return registration.KindOf(err)
}
