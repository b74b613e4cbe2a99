package service

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"julianmorley.ca/con-plar/storefront/pkg/models"
	"julianmorley.ca/con-plar/storefront/pkg/store"
)

type ContactService interface {
	SubmitContactMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error)
}

func NewContactService(messages store.ContactRepository) ContactService {
	return &contactService{messages: messages}
}

type contactService struct {
	messages store.ContactRepository
}

func (s *contactService) SubmitContactMessage(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	message := req.ToMessage()
	if err := s.messages.CreateContactMessage(ctx, message); err != nil {
		return nil, errors.Wrap(err, "store contact message")
	}
	log.WithField("contact_id", message.ID).Info("Contact message received")
	return message, nil
}
