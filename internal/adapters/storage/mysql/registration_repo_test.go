package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"testing"

	"pet-cadastro/internal/domain/registration"
	"pet-cadastro/internal/platform/config"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOwner() registration.Owner {
	return registration.Owner{FullName: "Ana Silva", TaxID: "123", Email: "a@b.com", Phone: "999", Address: "Rua X"}
}

func samplePet() registration.Pet {
	return registration.Pet{Name: "Rex", Species: "cão", Breed: "Labrador", BirthDate: "2020-01-01"}
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectOwnerInsert(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectExec("INSERT INTO donos").
		WithArgs("Ana Silva", "123", "a@b.com", "999", "Rua X").
		WillReturnResult(sqlmock.NewResult(id, 1))
}

func TestRegistrationRepo_Register(t *testing.T) {
	t.Run("Should insert owner then pet with its id and commit", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		expectOwnerInsert(mock, 42)
		mock.ExpectExec("INSERT INTO pets").
			WithArgs(int64(42), "Rex", "cão", "Labrador", "2020-01-01", nil).
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectCommit()

		res, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), samplePet())
		require.NoError(t, err)
		assert.Equal(t, registration.Result{OwnerID: 42, PetID: 7}, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should bind notes when present", func(t *testing.T) {
		db, mock := newMock(t)

		notes := "vacinado"
		p := samplePet()
		p.Notes = &notes

		mock.ExpectBegin()
		expectOwnerInsert(mock, 1)
		mock.ExpectExec("INSERT INTO pets").
			WithArgs(int64(1), "Rex", "cão", "Labrador", "2020-01-01", "vacinado").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		_, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), p)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should roll back the owner when the pet insert fails", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		expectOwnerInsert(mock, 42)
		mock.ExpectExec("INSERT INTO pets").
			WillReturnError(&mysqldrv.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
		mock.ExpectRollback()

		_, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), samplePet())
		require.Error(t, err)
		assert.Equal(t, registration.KindValidation, registration.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report duplicate cpf as conflict", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO donos").
			WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"})
		mock.ExpectRollback()

		_, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), samplePet())
		require.Error(t, err)
		assert.Equal(t, registration.KindConflict, registration.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should fail without inserts when begin fails", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin().WillReturnError(mysqldrv.ErrInvalidConn)

		_, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), samplePet())
		require.Error(t, err)
		assert.Equal(t, registration.KindConnectivity, registration.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should fail when commit fails", func(t *testing.T) {
		db, mock := newMock(t)

		mock.ExpectBegin()
		expectOwnerInsert(mock, 42)
		mock.ExpectExec("INSERT INTO pets").WillReturnResult(sqlmock.NewResult(7, 1))
		// database/sql cierra la tx aunque Commit falle; el Rollback posterior no llega al driver
		mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		_, err := NewRegistrationRepo(db).Register(context.Background(), sampleOwner(), samplePet())
		require.Error(t, err)
		assert.Equal(t, registration.KindUnknown, registration.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DB{Host: "localhost", Port: "3306", User: "root", Password: "secret", Database: "petshop"})

	parsed, err := mysqldrv.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "petshop", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want registration.Kind
	}{
		{"duplicate cpf", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"}, registration.KindConflict},
		{"fk", &mysqldrv.MySQLError{Number: 1452}, registration.KindValidation},
		{"bad date", &mysqldrv.MySQLError{Number: 1292}, registration.KindValidation},
		{"null", &mysqldrv.MySQLError{Number: 1048}, registration.KindValidation},
		{"too long", &mysqldrv.MySQLError{Number: 1406}, registration.KindValidation},
		{"syntax", &mysqldrv.MySQLError{Number: 1064}, registration.KindUnknown},
		{"bad conn", fmt.Errorf("exec: %w", driver.ErrBadConn), registration.KindConnectivity},
		{"invalid conn", mysqldrv.ErrInvalidConn, registration.KindConnectivity},
		{"conn done", sql.ErrConnDone, registration.KindConnectivity},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, registration.KindConnectivity},
		{"canceled", context.Canceled, registration.KindConnectivity},
		{"other", errors.New("boom"), registration.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, kindOf(tc.err))
		})
	}
}

func TestClassifyKeepsCause(t *testing.T) {
	cause := &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry '123' for key 'cpf'"}
	err := classify("insert donos", cause)

	var myErr *mysqldrv.MySQLError
	require.ErrorAs(t, err, &myErr)
	assert.Equal(t, uint16(1062), myErr.Number)
	assert.Equal(t, registration.KindConflict, registration.KindOf(err))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	b, err := migrationsFS.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "AUTO_INCREMENT")
	assert.Contains(t, string(b), "FOREIGN KEY (id_dono)")
}
