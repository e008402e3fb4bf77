package entities

// Settings holds the publicly visible contact configuration managed by
// administrators.
type Settings struct {
	WhatsAppNumber  string
	WhatsAppMessage string
}
