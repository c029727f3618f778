// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agencydesk-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// deliveryLookahead is how far ahead of the delivery date customers are notified.
const deliveryLookahead = 3 * 24 * time.Hour

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Delivery reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily delivery reminder processing...")

	var admins []models.User
	if err := s.db.Find(&admins, "role = ?", models.RoleAdmin).Error; err != nil {
		log.Printf("Failed to fetch admin accounts: %v", err)
		return
	}

	for _, admin := range admins {
		s.ProcessOwnerReminders(admin.ID)
	}

	log.Println("Daily delivery reminder processing completed")
}

func (s *ReminderService) ProcessOwnerReminders(ownerID uuid.UUID) {
	customers, err := s.upcomingDeliveries(ownerID)
	if err != nil {
		log.Printf("Owner %s: Failed to get upcoming deliveries: %v", ownerID, err)
		return
	}
	s.sendReminders(ownerID, customers)
}

// upcomingDeliveries lists customers whose delivery date falls within the
// lookahead window and whose engagement is not already closed out.
func (s *ReminderService) upcomingDeliveries(ownerID uuid.UUID) ([]models.Customer, error) {
	now := time.Now()
	until := now.Add(deliveryLookahead)

	var customers []models.Customer
	err := s.db.
		Where("user_id = ?", ownerID).
		Where("delivery_date IS NOT NULL AND delivery_date BETWEEN ? AND ?", now, until).
		Where("over_status NOT IN ?", []models.RequestStatus{models.StatusDelivered, models.StatusCancelled}).
		Find(&customers).Error
	return customers, err
}

func (s *ReminderService) sendReminders(ownerID uuid.UUID, customers []models.Customer) {
	for _, customer := range customers {
		message := fmt.Sprintf(
			"Hi %s, your documents are scheduled for delivery on %s. Please keep your reference ID %s handy.",
			customer.FullName,
			customer.DeliveryDate.Format("02 Jan 2006"),
			customer.CustomerID,
		)

		// WhatsApp if the number is in E.164 format, else SMS
		channel := "sms"
		to := customer.MobileNumber
		if strings.HasPrefix(customer.MobileNumber, "+") {
			to = "whatsapp:" + customer.MobileNumber
			channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)

		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", customer.MobileNumber, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", customer.MobileNumber, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", customer.MobileNumber)
		}

		reminderLog := models.ReminderLog{
			UserID:       ownerID,
			CustomerID:   customer.ID,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      channel,
			SentAt:       time.Now(),
		}

		if err := s.db.Create(&reminderLog).Error; err != nil {
			log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
		}
	}
}
