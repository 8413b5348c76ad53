package whatsapp

// StatusCheckRequest é o ping de conectividade no webhook da automação.
type StatusCheckRequest struct {
	Instance  string `json:"instance"`
	CheckOnly bool   `json:"checkOnly"`
}

// PairRequest pede geração de QR code ou pairing code para vincular o
// aparelho à instância.
type PairRequest struct {
	UserID    string `json:"userId"`
	Instance  string `json:"instance"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// PairResult é a resposta normalizada da geração de pareamento. A automação
// devolve formatos variados; o client resolve tudo para esta struct.
type PairResult struct {
	AlreadyConnected bool   `json:"already_connected"`
	QRBase64         string `json:"qr_base64,omitempty"`
	PairingCode      string `json:"pairing_code,omitempty"`
}

// pairResponse cobre as variações de shape observadas na automação:
// campos no topo, aninhados em data, ou em instance.state.
type pairResponse struct {
	Success     *bool  `json:"success"`
	Connected   *bool  `json:"connected"`
	State       string `json:"state"`
	Base64      string `json:"base64"`
	QRCode      string `json:"qrcode"`
	PairingCode string `json:"pairingCode"`
	Instance    struct {
		State string `json:"state"`
	} `json:"instance"`
	Data struct {
		Base64      string `json:"base64"`
		QRCode      string `json:"qrcode"`
		PairingCode string `json:"pairingCode"`
		Instance    struct {
			State string `json:"state"`
		} `json:"instance"`
	} `json:"data"`
}

// dispatchRequest é o POST por destinatário do disparo em massa.
type dispatchRequest struct {
	Leads    []dispatchLead `json:"leads"`
	Mensagem string         `json:"mensagem"`
	DelayMin int            `json:"delayMin"`
	DelayMax int            `json:"delayMax"`
	UsarIA   bool           `json:"usarIA"`
}

type dispatchLead struct {
	Nome   string `json:"nome"`
	Numero string `json:"numero"`
}

type dispatchResponse struct {
	Success *bool `json:"success"`
}
