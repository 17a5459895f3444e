package orders

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxCartLines = 20

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateSubmission checks the raw customer and cart payload and returns
// every violation at once, so the client can fix all fields in one round
// trip. An empty slice means the submission is valid.
func ValidateSubmission(c *Customer, lines []CartLine) []string {
	var errs []string

	if c == nil {
		errs = append(errs, "cliente es requerido")
	} else {
		if n := utf8.RuneCountInString(strings.TrimSpace(c.Name)); n < 2 || n > 100 {
			errs = append(errs, "nombre debe tener entre 2 y 100 caracteres")
		}
		if !emailRe.MatchString(strings.TrimSpace(c.Email)) {
			errs = append(errs, "email no es válido")
		}
		if utf8.RuneCountInString(strings.TrimSpace(c.Phone)) < 7 {
			errs = append(errs, "teléfono debe tener al menos 7 caracteres")
		}
		if utf8.RuneCountInString(strings.TrimSpace(c.Address)) < 10 {
			errs = append(errs, "dirección debe tener al menos 10 caracteres")
		}
	}

	switch {
	case len(lines) == 0:
		errs = append(errs, "el carrito está vacío")
	case len(lines) > MaxCartLines:
		errs = append(errs, fmt.Sprintf("demasiados productos en el carrito (máximo %d)", MaxCartLines))
	}

	for i, ln := range lines {
		if strings.TrimSpace(ln.ProductID) == "" {
			errs = append(errs, fmt.Sprintf("línea %d: producto sin id", i+1))
		}
		if ln.Quantity < 1 || ln.Quantity > 99 {
			errs = append(errs, fmt.Sprintf("línea %d: cantidad debe estar entre 1 y 99", i+1))
		}
		if ln.BasePrice.IsNegative() {
			errs = append(errs, fmt.Sprintf("línea %d: precio base no puede ser negativo", i+1))
		}
	}

	return errs
}
