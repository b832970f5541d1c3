package entity

import "strings"

// ChatServer é o sufixo fixo que transforma um número em endereço de chat.
const ChatServer = "s.whatsapp.net"

const (
	JobText  = "TEXT"
	JobMedia = "MEDIA"
)

type OutboundRequest struct {
	Number  string `json:"number"`
	Message string `json:"message,omitempty"`
}

type MediaRequest struct {
	Number   string `json:"number"`
	FileName string `json:"fileName"`
	Caption  string `json:"caption"`
}

type InboundEvent struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// OutboundJob é a unidade entregue ao Dispatcher (goroutine ou fila).
type OutboundJob struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"` // TEXT, MEDIA
	Number   string `json:"number"`
	Message  string `json:"message,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Origin   string `json:"origin"` // API, WEBHOOK, WHATSAPP
}

// Media é o conteúdo carregado do disco, pronto para upload.
type Media struct {
	FileName string
	Mimetype string
	Data     []byte
}

// ChatID monta o endereço do chat. Valores que já trazem "@" são mantidos.
func ChatID(number string) string {
	number = strings.TrimSpace(number)
	if strings.Contains(number, "@") {
		return number
	}
	return strings.TrimPrefix(number, "+") + "@" + ChatServer
}
