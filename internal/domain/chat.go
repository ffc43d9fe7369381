package domain

// Tipos de mensaje dentro de un chat.
const (
	MessageTypeSent     = "sent"
	MessageTypeReceived = "received"
)

// Contact es un contacto del seed estatico; no hay altas ni bajas.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Message es inmutable una vez agregado; el orden es el de insercion.
type Message struct {
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// Chat agrupa los mensajes con un contacto. Hay a lo sumo un chat por
// contacto, garantizado por el lookup previo a la creacion.
type Chat struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contactId"`
	Name        string    `json:"name"`
	Messages    []Message `json:"messages"`
	LastMessage string    `json:"lastMessage"`
	Time        string    `json:"time"`
}
