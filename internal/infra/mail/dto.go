package mail

type AuthFailureEmailData struct {
	Reason      string
	SessionFile string
	OccurredAt  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
