package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

const (
	defaultPostPageSize = 10
	maxPostPageSize     = 50
)

type PostSummary struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	ViewCount    int64     `json:"view_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalCount int64         `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CommunityService interface {
	ListPosts(ctx context.Context, page, limit int) (*PostPage, error)
	GetPost(ctx context.Context, postID uint) (*types.CommunityPost, error)
	CreatePost(ctx context.Context, userID uint, req *CreatePostRequest) (*types.CommunityPost, error)
	UpdatePost(ctx context.Context, userID, postID uint, req *UpdatePostRequest) (*types.CommunityPost, error)
	DeletePost(ctx context.Context, userID, postID uint) error
	ListComments(ctx context.Context, postID uint) ([]*types.CommunityComment, error)
	CreateComment(ctx context.Context, userID, postID uint, content string) (*types.CommunityComment, error)
	UpdateComment(ctx context.Context, userID, commentID uint, content string) (*types.CommunityComment, error)
	DeleteComment(ctx context.Context, userID, commentID uint) error
}

type communityService struct {
	db          *gorm.DB
	log         *logger.Logger
	postRepo    repos.CommunityPostRepo
	commentRepo repos.CommunityCommentRepo
}

func NewCommunityService(
	db *gorm.DB,
	log *logger.Logger,
	postRepo repos.CommunityPostRepo,
	commentRepo repos.CommunityCommentRepo,
) CommunityService {
	serviceLog := log.With("service", "CommunityService")
	return &communityService{
		db:          db,
		log:         serviceLog,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func (s *communityService) ListPosts(ctx context.Context, page, limit int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPostPageSize
	}
	if limit > maxPostPageSize {
		limit = maxPostPageSize
	}

	total, err := s.postRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to count posts: %w", err))
	}

	posts, err := s.postRepo.List(ctx, nil, (page-1)*limit, limit)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list posts: %w", err))
	}

	summaries := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		summary := PostSummary{
			ID:           post.ID,
			UserID:       post.UserID,
			Title:        post.Title,
			ViewCount:    post.ViewCount,
			CommentCount: len(post.Comments),
			CreatedAt:    post.CreatedAt,
		}
		if post.User != nil {
			summary.AuthorName = post.User.Name
		}
		summaries = append(summaries, summary)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PostPage{
		Posts:      summaries,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *communityService) GetPost(ctx context.Context, postID uint) (*types.CommunityPost, error) {
	post, err := s.postRepo.GetByIDWithComments(ctx, nil, postID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load post: %w", err))
	}
	if post == nil {
		return nil, apierr.NotFound("post not found")
	}

	// Counter bump happens in the database so concurrent reads never lose
	// increments; the in-memory copy mirrors what the row now holds.
	if err := s.postRepo.IncrementViewCount(ctx, nil, postID); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to bump view count: %w", err))
	}
	post.ViewCount++
	return post, nil
}

func (s *communityService) CreatePost(ctx context.Context, userID uint, req *CreatePostRequest) (*types.CommunityPost, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, apierr.Validation("title is required")
	}
	if content == "" {
		return nil, apierr.Validation("content is required")
	}

	post, err := s.postRepo.Create(ctx, nil, &types.CommunityPost{
		UserID:  userID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to create post: %w", err))
	}
	return post, nil
}

func (s *communityService) UpdatePost(ctx context.Context, userID, postID uint, req *UpdatePostRequest) (*types.CommunityPost, error) {
	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load post: %w", err))
	}
	if post == nil {
		return nil, apierr.NotFound("post not found")
	}
	if post.UserID != userID {
		return nil, apierr.Forbidden("only the author can modify this post")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apierr.Validation("title cannot be empty")
		}
		post.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, apierr.Validation("content cannot be empty")
		}
		post.Content = content
	}

	updated, err := s.postRepo.Update(ctx, nil, post)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to update post: %w", err))
	}
	return updated, nil
}

func (s *communityService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("failed to load post: %w", err))
	}
	if post == nil {
		return apierr.NotFound("post not found")
	}
	if post.UserID != userID {
		return apierr.Forbidden("only the author can delete this post")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.DeleteByPostID(ctx, tx, postID); err != nil {
			return apierr.Upstream(fmt.Errorf("failed to delete comments: %w", err))
		}
		if err := s.postRepo.Delete(ctx, tx, postID); err != nil {
			return apierr.Upstream(fmt.Errorf("failed to delete post: %w", err))
		}
		return nil
	})
}

func (s *communityService) ListComments(ctx context.Context, postID uint) ([]*types.CommunityComment, error) {
	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load post: %w", err))
	}
	if post == nil {
		return nil, apierr.NotFound("post not found")
	}

	comments, err := s.commentRepo.ListByPostID(ctx, nil, postID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list comments: %w", err))
	}
	return comments, nil
}

func (s *communityService) CreateComment(ctx context.Context, userID, postID uint, content string) (*types.CommunityComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.Validation("content is required")
	}

	post, err := s.postRepo.GetByID(ctx, nil, postID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load post: %w", err))
	}
	if post == nil {
		return nil, apierr.NotFound("post not found")
	}

	comment, err := s.commentRepo.Create(ctx, nil, &types.CommunityComment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to create comment: %w", err))
	}
	return comment, nil
}

func (s *communityService) UpdateComment(ctx context.Context, userID, commentID uint, content string) (*types.CommunityComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.Validation("content is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, nil, commentID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load comment: %w", err))
	}
	if comment == nil {
		return nil, apierr.NotFound("comment not found")
	}
	if comment.UserID != userID {
		return nil, apierr.Forbidden("only the author can modify this comment")
	}

	comment.Content = content
	updated, err := s.commentRepo.Update(ctx, nil, comment)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to update comment: %w", err))
	}
	return updated, nil
}

func (s *communityService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, nil, commentID)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("failed to load comment: %w", err))
	}
	if comment == nil {
		return apierr.NotFound("comment not found")
	}
	if comment.UserID != userID {
		return apierr.Forbidden("only the author can delete this comment")
	}

	if err := s.commentRepo.Delete(ctx, nil, commentID); err != nil {
		return apierr.Upstream(fmt.Errorf("failed to delete comment: %w", err))
	}
	return nil
}
