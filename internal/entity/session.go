package entity

import "time"

// Session é o registro de autenticação gravado após o pareamento.
// As chaves do dispositivo ficam no device store do whatsmeow; este arquivo
// aponta qual dispositivo carregar na próxima inicialização.
type Session struct {
	JID          string    `json:"jid"`
	LID          string    `json:"lid,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	Platform     string    `json:"platform,omitempty"`
	PairedAt     time.Time `json:"paired_at"`
}
