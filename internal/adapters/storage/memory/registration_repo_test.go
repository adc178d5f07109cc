package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"pet-cadastro/internal/domain/registration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func owner(cpf string) registration.Owner {
	return registration.Owner{FullName: "Ana Silva", TaxID: cpf, Email: "a@b.com", Phone: "999", Address: "Rua X"}
}

func pet(name string) registration.Pet {
	return registration.Pet{Name: name, Species: "cão", Breed: "Labrador", BirthDate: "2020-01-01"}
}

func TestRegister_InsertsBothRowsLinked(t *testing.T) {
	repo := NewRegistrationRepo()

	res, err := repo.Register(context.Background(), owner("123"), pet("Rex"))
	require.NoError(t, err)

	owners, pets := repo.Owners(), repo.Pets()
	require.Len(t, owners, 1)
	require.Len(t, pets, 1)
	assert.Equal(t, res.OwnerID, owners[0].ID)
	assert.Equal(t, res.OwnerID, pets[0].OwnerID)
	assert.Nil(t, pets[0].Notes)
}

func TestRegister_PetFailureRollsBackOwner(t *testing.T) {
	repo := NewRegistrationRepo()

	p := pet("Rex")
	p.BirthDate = "not-a-date"

	_, err := repo.Register(context.Background(), owner("123"), p)
	require.Error(t, err)
	assert.Equal(t, registration.KindValidation, registration.KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, repo.Owners())
	assert.Empty(t, repo.Pets())

	// el cpf no quedó reservado
	_, err = repo.Register(context.Background(), owner("123"), pet("Rex"))
	require.NoError(t, err)
}

func TestRegister_DuplicateCPFIsConflict(t *testing.T) {
	repo := NewRegistrationRepo()

	_, err := repo.Register(context.Background(), owner("123"), pet("Rex"))
	require.NoError(t, err)

	_, err = repo.Register(context.Background(), owner("123"), pet("Bob"))
	require.Error(t, err)
	assert.Equal(t, registration.KindConflict, registration.KindOf(err))
	assert.Len(t, repo.Owners(), 1)
	assert.Len(t, repo.Pets(), 1)
}

func TestRegister_OfflineIsConnectivity(t *testing.T) {
	repo := NewRegistrationRepo()
	repo.SetOffline(true)

	_, err := repo.Register(context.Background(), owner("123"), pet("Rex"))
	assert.Equal(t, registration.KindConnectivity, registration.KindOf(err))
	assert.Empty(t, repo.Owners())
}

func TestRegister_ConcurrentKeepsAssociations(t *testing.T) {
	repo := NewRegistrationRepo()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Register(context.Background(), owner(fmt.Sprintf("cpf-%d", i)), pet(fmt.Sprintf("pet-%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	owners := map[int64]registration.Owner{}
	for _, o := range repo.Owners() {
		owners[o.ID] = o
	}
	require.Len(t, owners, n)

	for _, p := range repo.Pets() {
		o, ok := owners[p.OwnerID]
		require.True(t, ok)
		// pet-i siempre pertenece a cpf-i
		assert.Equal(t, "cpf-"+p.Name[len("pet-"):], o.TaxID)
	}
}
