package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ReportEmailData struct {
	Name       string
	ResultsURL string
}
