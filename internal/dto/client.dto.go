package dto

import domain "github.com/BruksfildServices01/client-registry/internal/domain/client"

type CreateClientRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Email     *string  `json:"email"`
	Phones    []string `json:"phone"`
}

func (r CreateClientRequest) ToDomain() domain.NewClient {
	return domain.NewClient{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phones:    r.Phones,
	}
}

type AddPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}
