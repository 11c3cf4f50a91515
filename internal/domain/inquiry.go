package domain

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookingInquiry is a public booking-form submission for a specific package.
type BookingInquiry struct {
	PackageName string `json:"package_name"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	People      int    `json:"people"`
	Message     string `json:"message"`
}

// Validate enforces the booking form's required fields.
func (b BookingInquiry) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.PackageName, validation.Required),
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Phone, validation.Required),
		validation.Field(&b.Date, validation.Required),
		validation.Field(&b.People, validation.Required, validation.Min(1)),
	)
}

// NotificationText renders the Markdown message posted to the agency channel.
func (b BookingInquiry) NotificationText() string {
	message := b.Message
	if strings.TrimSpace(message) == "" {
		message = "-"
	}
	return fmt.Sprintf(
		"📦 *Paketni bron qilish*\n🏝 Paket: %s\n👤 Ism: %s\n📞 Telefon: %s\n📅 Sana: %s\n👥 Odamlar soni: %d\n💬 Xabar: %s",
		b.PackageName, b.Name, b.Phone, b.Date, b.People, message,
	)
}

// ContactInquiry is a public contact-form submission.
type ContactInquiry struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Validate enforces the contact form's required fields.
func (c ContactInquiry) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Phone, validation.Required),
		validation.Field(&c.Message, validation.Required),
	)
}

// NotificationText renders the Markdown message posted to the agency channel.
func (c ContactInquiry) NotificationText() string {
	return fmt.Sprintf(
		"📩 *Yangi xabar!*\n👤 Ism: %s\n📞 Telefon: %s\n💬 Xabar: %s",
		c.Name, c.Phone, c.Message,
	)
}
