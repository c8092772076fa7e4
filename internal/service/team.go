package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kube-rca/incident-desk/internal/model"
)

type teamRepo interface {
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)
	GetTeamMember(ctx context.Context, id string) (*model.TeamMember, error)
}

type TeamService struct {
	repo teamRepo
}

func NewTeamService(repo teamRepo) *TeamService {
	return &TeamService{repo: repo}
}

func (s *TeamService) List(ctx context.Context) ([]model.TeamMember, error) {
	list, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, upstream("failed to list team members", err)
	}
	return list, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*model.TeamMember, error) {
	if !isUUID(id) {
		return nil, notFound("team member not found")
	}
	member, err := s.repo.GetTeamMember(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("team member not found")
		}
		return nil, upstream("failed to load team member", err)
	}
	return member, nil
}

type commentRepo interface {
	ListComments(ctx context.Context) ([]model.Comment, error)
	CreateComment(ctx context.Context, name, comment string) (*model.Comment, error)
}

// CommentService - 대시보드 방명록 형태의 자유 코멘트
type CommentService struct {
	repo commentRepo
}

func NewCommentService(repo commentRepo) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) List(ctx context.Context) ([]model.Comment, error) {
	list, err := s.repo.ListComments(ctx)
	if err != nil {
		return nil, upstream("failed to list comments", err)
	}
	return list, nil
}

func (s *CommentService) Create(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	comment, err := s.repo.CreateComment(ctx, req.Name, req.Comment)
	if err != nil {
		return nil, upstream("failed to create comment", err)
	}
	return comment, nil
}
