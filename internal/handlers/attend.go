package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/services"
)

type AttendHandler struct {
	attendService services.AttendService
}

func NewAttendHandler(attendService services.AttendService) *AttendHandler {
	return &AttendHandler{attendService: attendService}
}

func (ath *AttendHandler) Attend(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	var req services.AttendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.Validation("invalid request body"))
		return
	}
	attendance, err := ath.attendService.Attend(c.Request.Context(), rd.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attendance)
}

func (ath *AttendHandler) CheckToday(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	attendance, err := ath.attendService.CheckToday(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attended": attendance != nil, "attendance": attendance})
}

func (ath *AttendHandler) CheckMonth(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	attendances, err := ath.attendService.CheckMonth(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendances": attendances, "count": len(attendances)})
}

func (ath *AttendHandler) Routines(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	recommendation, err := ath.attendService.GetRoutineRecommendations(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendation)
}
