package profile

import "github.com/shuldan/underc0de-admin/pkg/errors"

var newProfileCode = errors.WithPrefix("PROFILE")

var (
	ErrCurrentPasswordRequired = newProfileCode().New("Ingresa tu contraseña actual.")
	ErrPasswordMismatch        = newProfileCode().New("La nueva contraseña y la confirmación no coinciden.")
	ErrPasswordTooShort        = newProfileCode().New("La nueva contraseña debe tener al menos {{.min}} caracteres.").WithDetail("min", minPasswordLength)
	ErrNothingToUpdate         = newProfileCode().New("nothing to update, pass -name, -email or -password")
)
