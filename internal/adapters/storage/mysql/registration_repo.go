package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"pet-cadastro/internal/domain/registration"

	mysqldrv "github.com/go-sql-driver/mysql"
)

const (
	insertOwnerSQL = `INSERT INTO donos (nome_completo, cpf, email, telefone, endereco) VALUES (?, ?, ?, ?, ?)`
	insertPetSQL   = `INSERT INTO pets (id_dono, nome_pet, especie, raca, data_nascimento, observacoes) VALUES (?, ?, ?, ?, ?, ?)`
)

// Códigos de error de MySQL que clasificamos.
const (
	erDupEntry          = 1062
	erBadNull           = 1048
	erNoReferencedRow   = 1452
	erTruncatedWrongVal = 1292
	erDataTooLong       = 1406
)

type RegistrationRepo struct {
	db *sql.DB
}

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

// Register toma una conexión con BeginTx; la tx la retiene hasta Commit/Rollback.
func (r *RegistrationRepo) Register(ctx context.Context, o registration.Owner, p registration.Pet) (registration.Result, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return registration.Result{}, classify("begin", err)
	}

	res, err := insertOwnerAndPet(ctx, tx, o, p)
	if err != nil {
		_ = tx.Rollback()
		return registration.Result{}, err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return registration.Result{}, classify("commit", err)
	}
	return res, nil
}

func insertOwnerAndPet(ctx context.Context, tx *sql.Tx, o registration.Owner, p registration.Pet) (registration.Result, error) {
	var res registration.Result

	ownerRes, err := tx.ExecContext(ctx, insertOwnerSQL, o.FullName, o.TaxID, o.Email, o.Phone, o.Address)
	if err != nil {
		return res, classify("insert donos", err)
	}
	if res.OwnerID, err = ownerRes.LastInsertId(); err != nil {
		return res, classify("insert donos", err)
	}

	petRes, err := tx.ExecContext(ctx, insertPetSQL, res.OwnerID, p.Name, p.Species, p.Breed, p.BirthDate, p.NotesArg())
	if err != nil {
		return res, classify("insert pets", err)
	}
	if res.PetID, err = petRes.LastInsertId(); err != nil {
		return res, classify("insert pets", err)
	}

	return res, nil
}

func classify(op string, err error) error {
	return registration.NewError(kindOf(err), op, err)
}

func kindOf(err error) registration.Kind {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erDupEntry:
			return registration.KindConflict
		case erBadNull, erNoReferencedRow, erTruncatedWrongVal, erDataTooLong:
			return registration.KindValidation
		}
		return registration.KindUnknown
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) || errors.Is(err, sql.ErrConnDone) {
		return registration.KindConnectivity
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return registration.KindConnectivity
	}
	return registration.KindOf(err)
}
