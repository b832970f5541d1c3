package entity

import "strings"

const (
	GreetingReply = "Olá! Como posso ajudar?"
	PriceReply    = "O preço do produto X é R$ 100."
	FallbackReply = "Desculpe, não entendi o que você disse."
)

type ReplyRule struct {
	Keyword  string
	Response string
}

// DefaultReplyRules na ordem de avaliação: a primeira que casar vence.
var DefaultReplyRules = []ReplyRule{
	{Keyword: "oi", Response: GreetingReply},
	{Keyword: "preço", Response: PriceReply},
}

func (r ReplyRule) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(r.Keyword))
}
