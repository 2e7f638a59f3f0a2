package cep

import (
	"strings"

	"formlab-backend/internal/shared/svcerr"
)

// Address is the result of a CEP lookup.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Service resolves Brazilian postal codes against a fixed mock table.
type Service struct {
	addresses []Address
}

// NewService constructs a Service with the lab's mock address table.
func NewService() *Service {
	return &Service{
		addresses: []Address{
			{
				CEP:          "01001-000",
				Street:       "Praça da Sé",
				Neighborhood: "Sé",
				City:         "São Paulo",
				State:        "SP",
			},
			{
				CEP:          "20040-002",
				Street:       "Rua da Assembleia",
				Neighborhood: "Centro",
				City:         "Rio de Janeiro",
				State:        "RJ",
			},
			{
				CEP:          "70040-010",
				Street:       "SBN Quadra 1",
				Neighborhood: "Asa Norte",
				City:         "Brasília",
				State:        "DF",
			},
		},
	}
}

// Lookup normalizes the CEP to digits and resolves it. Unknown but well-formed
// codes get a generic mock record so the lab form stays usable; malformed input
// is a NOT_FOUND.
func (s *Service) Lookup(cep string) (Address, error) {
	normalized := digitsOnly(cep)

	for _, addr := range s.addresses {
		if digitsOnly(addr.CEP) == normalized {
			return addr, nil
		}
	}

	if len(normalized) == 8 {
		return Address{
			CEP:          cep,
			Street:       "Rua Exemplo (Mock)",
			Neighborhood: "Bairro Exemplo",
			City:         "Cidade Exemplo",
			State:        "EX",
		}, nil
	}

	return Address{}, svcerr.NotFound("CEP not found")
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
