package service

import (
	"context"
	"strings"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/models"
	"github.com/autoluxe/internal/repository"
)

const defaultReviewCommentLength = 2000

// ReviewView 评价展示（附带评价人名称）
type ReviewView struct {
	models.Review
	UserName string `json:"user_name"`
}

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	statuses   []string
	maxComment int
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository, cfg config.ReviewConfig) *ReviewService {
	statuses := make([]string, 0, len(cfg.QualifyingStatuses))
	for _, status := range cfg.QualifyingStatuses {
		if status = strings.TrimSpace(status); status != "" {
			statuses = append(statuses, status)
		}
	}
	if len(statuses) == 0 {
		statuses = []string{constants.OrderStatusDelivered}
	}
	maxComment := cfg.MaxCommentLength
	if maxComment <= 0 {
		maxComment = defaultReviewCommentLength
	}
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		statuses:   statuses,
		maxComment: maxComment,
	}
}

// Add 添加评价，需存在包含该商品且状态合格的订单
func (s *ReviewService) Add(ctx context.Context, userID, itemID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewRatingInvalid
	}
	itemID = models.NormalizeObjectID(itemID)
	if !models.IsObjectID(itemID) {
		return nil, ErrReviewNotEligible
	}
	eligible, err := s.orderRepo.ExistsWithItem(ctx, userID, itemID, s.statuses)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrReviewNotEligible
	}

	review := &models.Review{
		UserID:  userID,
		ItemID:  itemID,
		Rating:  rating,
		Comment: sanitizePlainText(comment, s.maxComment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForItem 商品评价列表（新评价在前）
func (s *ReviewService) ListForItem(ctx context.Context, itemID string) ([]ReviewView, error) {
	itemID = models.NormalizeObjectID(itemID)
	reviews, err := s.reviewRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		view := ReviewView{Review: review}
		if review.User != nil {
			view.UserName = review.User.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// Remove 删除评价（本人或管理员）
func (s *ReviewService) Remove(ctx context.Context, reviewID, callerID string, callerIsAdmin bool) error {
	reviewID = models.NormalizeObjectID(reviewID)
	if !models.IsObjectID(reviewID) {
		return ErrReviewNotFound
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.UserID != callerID && !callerIsAdmin {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, review.ID)
}
