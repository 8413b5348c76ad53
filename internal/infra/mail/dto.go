package mail

type DispatchReportData struct {
	RunID  string
	Sent   int
	Failed int
	Total  int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
