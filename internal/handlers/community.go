package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/services"
)

type CommunityHandler struct {
	communityService services.CommunityService
}

func NewCommunityHandler(communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, apierr.Validation("invalid %s", name)
	}
	return uint(parsed), nil
}

func (ch *CommunityHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := ch.communityService.ListPosts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ch *CommunityHandler) GetPost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	post, err := ch.communityService.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (ch *CommunityHandler) CreatePost(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	post, err := ch.communityService.CreatePost(c.Request.Context(), rd.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (ch *CommunityHandler) UpdatePost(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	post, err := ch.communityService.UpdatePost(c.Request.Context(), rd.UserID, postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (ch *CommunityHandler) DeletePost(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ch.communityService.DeletePost(c.Request.Context(), rd.UserID, postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ch *CommunityHandler) ListComments(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := ch.communityService.ListComments(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (ch *CommunityHandler) CreateComment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	comment, err := ch.communityService.CreateComment(c.Request.Context(), rd.UserID, postID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (ch *CommunityHandler) UpdateComment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	comment, err := ch.communityService.UpdateComment(c.Request.Context(), rd.UserID, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (ch *CommunityHandler) DeleteComment(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ch.communityService.DeleteComment(c.Request.Context(), rd.UserID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
