package models

// SiteSettings is the single-row store configuration.
// PIXKey is required for checkout; the rest is presentation.
type SiteSettings struct {
	StoreName      string `json:"store_name"`
	PIXKey         string `json:"pix_key"`
	WhatsAppNumber string `json:"whatsapp_number"`
	PrimaryColor   string `json:"primary_color"`
}
