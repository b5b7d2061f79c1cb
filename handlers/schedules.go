package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VlaDexa/misisa/models"
	"github.com/VlaDexa/misisa/services"
)

type ScheduleHandler struct {
	minioService *services.MinIOService
	cacheService *services.CacheService
}

func NewScheduleHandler(minio *services.MinIOService, cache *services.CacheService) *ScheduleHandler {
	return &ScheduleHandler{
		minioService: minio,
		cacheService: cache,
	}
}

// GetSchedules возвращает список разобранных расписаний
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	cacheKey := "schedules"

	if cached, found := h.cacheService.Get(cacheKey); found {
		c.JSON(http.StatusOK, gin.H{
			"data":   cached,
			"cached": true,
		})
		return
	}

	files, err := h.minioService.ListParsedFiles(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list schedules",
			Message: err.Error(),
		})
		return
	}

	h.cacheService.Set(cacheKey, files, 0)

	c.JSON(http.StatusOK, gin.H{
		"data":   files,
		"cached": false,
	})
}

// GetSchedule возвращает разобранное расписание целиком: 4 курса
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	courses, ok := h.loadCourses(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourses возвращает имена курсов расписания
func (h *ScheduleHandler) GetCourses(c *gin.Context) {
	courses, ok := h.loadCourses(c)
	if !ok {
		return
	}

	names := make([]string, 0, len(courses))
	for _, course := range courses {
		names = append(names, course.Name)
	}
	c.JSON(http.StatusOK, gin.H{"data": names})
}

// GetGroup возвращает расписание одной группы
func (h *ScheduleHandler) GetGroup(c *gin.Context) {
	group, ok := h.findGroup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, group)
}

// GetSubgroup возвращает неделю одной подгруппы
func (h *ScheduleHandler) GetSubgroup(c *gin.Context) {
	group, ok := h.findGroup(c)
	if !ok {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "subgroup number must be an integer",
		})
		return
	}

	subgroup := group.GetSubgroup(number)
	if subgroup == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: fmt.Sprintf("subgroup %d not found", number),
		})
		return
	}

	c.JSON(http.StatusOK, subgroup)
}

// GetPresignedDownloadURL возвращает presigned URL для скачивания
// разобранного расписания
func (h *ScheduleHandler) GetPresignedDownloadURL(c *gin.Context) {
	fileName := c.Param("file")

	exists, err := h.minioService.ObjectExists(c.Request.Context(), fileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to check file existence",
			Message: err.Error(),
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "file not found",
		})
		return
	}

	urlResponse, err := h.minioService.GetPresignedURL(c.Request.Context(), fileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate download url",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, urlResponse)
}

// InvalidateCache сбрасывает кэш
func (h *ScheduleHandler) InvalidateCache(c *gin.Context) {
	h.cacheService.Flush()
	c.JSON(http.StatusOK, gin.H{
		"message": "cache invalidated successfully",
	})
}

// loadCourses достаёт разобранное расписание из кэша или целевого
// бакета. false — ответ уже записан.
func (h *ScheduleHandler) loadCourses(c *gin.Context) ([]models.Course, bool) {
	fileName := c.Param("file")
	cacheKey := "courses:" + fileName

	if cached, found := h.cacheService.Get(cacheKey); found {
		if courses, valid := cached.([]models.Course); valid {
			return courses, true
		}
	}

	exists, err := h.minioService.ObjectExists(c.Request.Context(), fileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to check file existence",
			Message: err.Error(),
		})
		return nil, false
	}
	if !exists {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "schedule not found",
		})
		return nil, false
	}

	data, err := h.minioService.DownloadParsedFile(c.Request.Context(), fileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to download schedule",
			Message: err.Error(),
		})
		return nil, false
	}

	var courses []models.Course
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&courses); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to decode schedule",
			Message: err.Error(),
		})
		return nil, false
	}

	h.cacheService.Set(cacheKey, courses, 0)
	return courses, true
}

// findGroup находит группу по имени курса и группы из пути.
// false — ответ уже записан.
func (h *ScheduleHandler) findGroup(c *gin.Context) (*models.GroupInfo, bool) {
	courses, ok := h.loadCourses(c)
	if !ok {
		return nil, false
	}

	courseName := c.Param("course")
	groupName := c.Param("group")

	for i := range courses {
		if courses[i].Name != courseName {
			continue
		}
		group := courses[i].FindGroup(groupName)
		if group == nil {
			break
		}
		return group, true
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error: fmt.Sprintf("group %q not found in course %q", groupName, courseName),
	})
	return nil, false
}
