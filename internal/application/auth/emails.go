package auth

import (
	"fmt"
	"net/url"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

func (uc *AuthUseCase) activationMail(u *entity.User, token string) ports.Mail {
	link := fmt.Sprintf("%s/activate?token=%s", uc.cfg.FrontendURL, url.QueryEscape(token))
	body := fmt.Sprintf(`Hola %s,

Gracias por registrarte en %s. Para activar tu cuenta abre el siguiente enlace:

%s

El enlace vence en %s. Si no creaste esta cuenta, ignora este mensaje.

El equipo de %s
`, u.DisplayName(), uc.cfg.SiteName, link, humanDuration(uc.cfg.ActivationMaxAge.Hours()), uc.cfg.SiteName)

	return ports.Mail{
		To:      u.Email,
		Subject: fmt.Sprintf("Activa tu cuenta de %s", uc.cfg.SiteName),
		Body:    body,
		Kind:    "activation",
	}
}

func (uc *AuthUseCase) passwordResetMail(u *entity.User, token string) ports.Mail {
	link := fmt.Sprintf("%s/reset-password?token=%s", uc.cfg.FrontendURL, url.QueryEscape(token))
	body := fmt.Sprintf(`Hola %s,

Recibimos una solicitud para restablecer la contraseña de tu cuenta en %s. Abre el siguiente enlace:

%s

El enlace vence en %s. Si no pediste el cambio, ignora este mensaje; tu contraseña no se modifica.

El equipo de %s
`, u.DisplayName(), uc.cfg.SiteName, link, humanDuration(uc.cfg.PasswordResetMaxAge.Hours()), uc.cfg.SiteName)

	return ports.Mail{
		To:      u.Email,
		Subject: fmt.Sprintf("Restablece tu contraseña de %s", uc.cfg.SiteName),
		Body:    body,
		Kind:    "password_reset",
	}
}

// humanDuration "7 días", "24 horas".
func humanDuration(hours float64) string {
	if hours >= 48 && int(hours)%24 == 0 {
		return fmt.Sprintf("%d días", int(hours)/24)
	}
	return fmt.Sprintf("%d horas", int(hours))
}
