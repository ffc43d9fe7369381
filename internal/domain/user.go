package domain

// User es el perfil singleton del usuario de la aplicacion.
type User struct {
	Name   string `json:"name"`
	About  string `json:"about"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// ProfileUpdate describe una actualizacion parcial del perfil.
// Campos ausentes o vacios se dejan sin tocar al aplicarla.
type ProfileUpdate struct {
	Name   string `json:"name"`
	About  string `json:"about"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}
