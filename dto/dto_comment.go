package dto

import (
	"campus-feed/internal/models"
	"campus-feed/internal/thread"
)

type CreateCommentReq struct {
	PostID   string `json:"postId" validate:"required"`
	Content  string `json:"content" validate:"max=2000"`
	ParentID string `json:"parentId"`
}

type ListCommentsResp struct {
	Items []models.Comment `json:"items"`
}

type ThreadResp struct {
	Items []*thread.Node `json:"items"`
}
