package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/services"
)

type JobHandler struct {
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (jh *JobHandler) Categories(c *gin.Context) {
	categories, err := jh.jobService.GetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (jh *JobHandler) Positions(c *gin.Context) {
	positions, err := jh.jobService.GetPositions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

func (jh *JobHandler) InterestedCategories(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	edges, err := jh.jobService.GetInterestedCategories(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": edges})
}

func (jh *JobHandler) InterestedPositions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	edges, err := jh.jobService.GetInterestedPositions(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": edges})
}

func (jh *JobHandler) AddInterestedCategories(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req struct {
		IDs []uint `json:"Ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	edges, err := jh.jobService.AddInterestedCategories(c.Request.Context(), rd.UserID, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"categories": edges})
}

func (jh *JobHandler) AddInterestedPositions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req struct {
		IDs []uint `json:"Ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	edges, err := jh.jobService.AddInterestedPositions(c.Request.Context(), rd.UserID, req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"positions": edges})
}

func (jh *JobHandler) DeleteInterestedCategories(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req struct {
		IDs []uint `json:"Ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	if err := jh.jobService.DeleteInterestedCategories(c.Request.Context(), rd.UserID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (jh *JobHandler) DeleteInterestedPositions(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req struct {
		IDs []uint `json:"Ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	if err := jh.jobService.DeleteInterestedPositions(c.Request.Context(), rd.UserID, req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Recommended is reachable without a token; anonymous callers get the
// most recent postings instead of an interest-filtered list.
func (jh *JobHandler) Recommended(c *gin.Context) {
	var userID uint
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		userID = rd.UserID
	}
	numOfRows, _ := strconv.Atoi(c.DefaultQuery("numOfRows", "10"))
	postings, err := jh.jobService.GetRecommendedJobs(c.Request.Context(), userID, numOfRows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postings": postings})
}

func (jh *JobHandler) Sync(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	numOfRows, _ := strconv.Atoi(c.DefaultQuery("numOfRows", "100"))
	result, err := jh.jobService.SyncJobPostings(c.Request.Context(), numOfRows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
