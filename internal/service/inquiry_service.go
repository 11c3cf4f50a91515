package service

import (
	"context"
	"fmt"

	"github.com/orzutravel/api/internal/domain"
)

// InquiryService forwards public form submissions to the agency's
// notification channel. Nothing is persisted; the channel is the inbox.
type InquiryService struct {
	notifier domain.Notifier
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(notifier domain.Notifier) *InquiryService {
	return &InquiryService{notifier: notifier}
}

// SubmitBooking validates and forwards a booking request.
func (s *InquiryService) SubmitBooking(ctx context.Context, inquiry domain.BookingInquiry) error {
	if err := inquiry.Validate(); err != nil {
		return err
	}
	if err := s.notifier.SendMessage(ctx, inquiry.NotificationText()); err != nil {
		return fmt.Errorf("failed to deliver booking inquiry: %w", err)
	}
	return nil
}

// SubmitContact validates and forwards a contact message.
func (s *InquiryService) SubmitContact(ctx context.Context, inquiry domain.ContactInquiry) error {
	if err := inquiry.Validate(); err != nil {
		return err
	}
	if err := s.notifier.SendMessage(ctx, inquiry.NotificationText()); err != nil {
		return fmt.Errorf("failed to deliver contact inquiry: %w", err)
	}
	return nil
}
