package domain

import "time"

// Proveedores de login soportados.
const (
	ProviderPhone     = "phone"
	ProviderGoogle    = "google"
	ProviderFacebook  = "facebook"
	ProviderInstagram = "instagram"
)

// Identity es el principal autenticado asociado a una sesion.
type Identity struct {
	ID       string        `json:"id"`
	Provider string        `json:"provider"`
	Phone    string        `json:"phone,omitempty"`
	Profile  *OAuthProfile `json:"profile,omitempty"`
}

// OAuthProfile es el perfil devuelto por un proveedor OAuth externo.
type OAuthProfile struct {
	Subject string `json:"subject"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

// OtpRecord es el codigo vigente para una clave countryCode|phoneNumber.
// A lo sumo un registro vivo por clave; un request nuevo lo pisa.
type OtpRecord struct {
	Code      string
	ExpiresAt time.Time
}
