package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"scootershare/internal/models"
	"scootershare/internal/pricing"
)

const (
	statusConfirmed = "confirmed"
	statusCancelled = "cancelled"
)

// SenderService builds booking notifications and hands them to the
// SendGrid/Twilio helpers. Sends run on their own goroutines so a slow
// provider never blocks the booking path.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(booking *models.Booking, scooter *models.Scooter, customer *models.Customer, status string) {
	name := customer.FirstName + " " + customer.LastName
	endTime, err := pricing.EndTime(booking.StartTime, booking.DurationMinutes)
	if err != nil {
		endTime = booking.StartTime
	}

	subject := fmt.Sprintf("Your ScooterShare booking is %s - %s", status, booking.ID)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour ScooterShare booking is %s.\n\n"+
			"Booking Details:\n"+
			"Booking ID: %s\n"+
			"Scooter: %s (%s)\n"+
			"Pickup: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s (%d min)\n"+
			"Cost: $%.2f\n\n"+
			"Thank you for riding with ScooterShare.\n\n"+
			"ScooterShare %d. All rights reserved.",
		name, status, booking.ID, scooter.Make, scooter.Color, scooter.Location,
		booking.Date, booking.StartTime, endTime, booking.DurationMinutes,
		pricing.RoundMoney(booking.Cost), time.Now().UTC().Year(),
	)

	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body); err != nil {
			log.WithError(err).WithField("booking", booking.ID).Warn("booking email failed")
		}
	}(customer.Email, name, subject, plainTextBody)
}

func (s *SenderService) SendBookingSMS(booking *models.Booking, customer *models.Customer, status string) {
	message := fmt.Sprintf("ScooterShare: booking %s has been %s!\nStart: %s %s.\nMore details in your email.",
		booking.ID, status, booking.Date, booking.StartTime)

	go func(toNumber, body string) {
		if err := SendSMS(toNumber, body); err != nil {
			log.WithError(err).WithField("booking", booking.ID).Warn("booking SMS failed")
		}
	}(customer.Phone, message)
}
