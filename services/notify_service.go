package services

import (
	"fmt"
	"log"
	"time"

	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/utils"
	"gorm.io/gorm"
)

// EnqueueEmail stores a pending email notification in the outbox.
// Enqueue failures are logged and swallowed: a missed notification must
// never roll back the state transition that produced it.
func EnqueueEmail(db *gorm.DB, to, subject, body string) {
	if to == "" {
		return
	}
	n := models.Notification{
		Channel:   models.NotifyChannelEmail,
		Recipient: to,
		Subject:   subject,
		Body:      body,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[notify] failed to enqueue email to %s: %v", to, err)
		return
	}
	log.Printf("[notify] queued email to %s: %s", to, subject)
}

// EnqueueWhatsApp stores a pending chat notification in the outbox
func EnqueueWhatsApp(db *gorm.DB, phone, message string) {
	if phone == "" {
		return
	}
	n := models.Notification{
		Channel:   models.NotifyChannelWhatsApp,
		Recipient: phone,
		Body:      message,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("[notify] failed to enqueue whatsapp to %s: %v", phone, err)
		return
	}
	log.Printf("[notify] queued whatsapp to %s", phone)
}

// DeepLink builds the provider compose link for a notification. There is
// no delivery tracking: opening the link is all this layer does.
func DeepLink(n *models.Notification) (string, error) {
	switch n.Channel {
	case models.NotifyChannelEmail:
		return utils.MailtoLink(n.Recipient, n.Subject, n.Body), nil
	case models.NotifyChannelWhatsApp:
		return utils.WhatsAppLink(n.Recipient, n.Body), nil
	default:
		return "", fmt.Errorf("unknown notification channel: %s", n.Channel)
	}
}

// MarkDispatched flips a notification to dispatched and stamps the time
func MarkDispatched(db *gorm.DB, n *models.Notification) error {
	now := time.Now()
	n.Status = models.NotifyStatusDispatched
	n.DispatchedAt = &now
	return db.Save(n).Error
}
