package web

import (
	"go-desk/internal/clients"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type loginForm struct {
	Login    string `form:"usuario" validate:"required"`
	Password string `form:"senha" validate:"required"`
}

type registerForm struct {
	Name     string `form:"nome" validate:"required"`
	Login    string `form:"usuario" validate:"required"`
	Password string `form:"senha" validate:"required"`
}

type clientForm struct {
	Name         string `form:"nome" validate:"required"`
	Company      string `form:"empresa"`
	TaxID        string `form:"cnpj"`
	ConnectionID string `form:"rustdesk_id" validate:"required"`
	Password     string `form:"senha"`
	Notes        string `form:"observacoes"`
}

func (f clientForm) input() clients.Input {
	return clients.Input{
		Name:         f.Name,
		Company:      f.Company,
		TaxID:        f.TaxID,
		ConnectionID: f.ConnectionID,
		Password:     f.Password,
		Notes:        f.Notes,
	}
}

// bindForm parses the request body into dst and validates it.
func bindForm(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
