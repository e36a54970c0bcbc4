package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

const (
	contactNameMaxLength    = 100
	contactSubjectMaxLength = 255
	contactMessageMaxLength = 5000
)

// ContactInput 联系表单输入
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService 联系我们留言服务
type ContactService struct {
	repo repository.ContactRepository
}

// NewContactService 创建留言服务
func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Submit 提交留言（四个字段均必填）
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    sanitizePlainText(input.Name, contactNameMaxLength),
		Email:   strings.TrimSpace(input.Email),
		Subject: sanitizePlainText(input.Subject, contactSubjectMaxLength),
		Message: sanitizePlainText(input.Message, contactMessageMaxLength),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, ErrContactFieldsRequired
	}
	addr, err := mail.ParseAddress(msg.Email)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	msg.Email = strings.ToLower(addr.Address)
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List 留言列表（新留言在前）
func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages, _, err := s.repo.List(ctx, repository.ContactListFilter{})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	return messages, nil
}

// Get 留言详情
func (s *ContactService) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return nil, ErrInvalidID
	}
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrContactNotFound
	}
	return msg, nil
}

// Delete 删除留言
func (s *ContactService) Delete(ctx context.Context, id string) error {
	id = models.NormalizeObjectID(id)
	if !models.IsObjectID(id) {
		return ErrContactNotFound
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}
