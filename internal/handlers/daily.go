package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/services"
)

type DailyHandler struct {
	dailyService services.DailyService
}

func NewDailyHandler(dailyService services.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

func (dh *DailyHandler) Keyword(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	keyword, err := dh.dailyService.GetTodayKeyword(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, keyword)
}

func (dh *DailyHandler) Report(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		respondError(c, apierr.Unauthorized("missing request credentials"))
		return
	}
	report, err := dh.dailyService.GetTodayReport(c.Request.Context(), rd.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
