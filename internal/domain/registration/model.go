package registration

import "strings"

// Owner es un registro de la tabla donos.
type Owner struct {
	ID int64

	FullName string // nome_completo
	TaxID    string // cpf, único en la base
	Email    string
	Phone    string // telefone
	Address  string // endereco
}

// Pet es un registro de la tabla pets. Siempre pertenece a un Owner.
type Pet struct {
	ID      int64
	OwnerID int64 // id_dono

	Name      string // nome_pet
	Species   string // especie
	Breed     string // raca
	BirthDate string // data_nascimento, YYYY-MM-DD; el tipo DATE lo impone la base

	// Notes nil se guarda como NULL.
	Notes *string
}

// Submission es el formulario plano tal como llega del cliente.
type Submission struct {
	Owner Owner
	Pet   Pet
}

// Result trae las identidades generadas por la base.
type Result struct {
	OwnerID int64
	PetID   int64
}

// NotesOrNil normaliza observacoes: vacío o ausente => NULL.
func NotesOrNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// NotesArg devuelve el valor a bindear en el INSERT (nil => NULL).
func (p Pet) NotesArg() any {
	if p.Notes == nil {
		return nil
	}
	return *p.Notes
}

// maskTaxID deja los últimos 2 dígitos para logs.
func maskTaxID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= 2 {
		return "**"
	}
	return strings.Repeat("*", len(s)-2) + s[len(s)-2:]
}
