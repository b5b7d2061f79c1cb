package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VlaDexa/misisa/models"
	"github.com/VlaDexa/misisa/services"
)

// ConvertHandler обрабатывает появление сырых книг расписаний в
// исходном бакете: скачивает, разбирает и кладёт JSON в целевой бакет
type ConvertHandler struct {
	minioService  *services.MinIOService
	parserService *services.ParserService
	cacheService  *services.CacheService
	sourceBucket  string
	targetBucket  string
}

func NewConvertHandler(minio *services.MinIOService, parser *services.ParserService, cache *services.CacheService, sourceBucket, targetBucket string) *ConvertHandler {
	return &ConvertHandler{
		minioService:  minio,
		parserService: parser,
		cacheService:  cache,
		sourceBucket:  sourceBucket,
		targetBucket:  targetBucket,
	}
}

type FileItem struct {
	FileName string `json:"file_name" binding:"required"`
}

type ProcessFilesRequest struct {
	Files []FileItem `json:"files" binding:"required,min=1"`
}

type ProcessFileResult struct {
	FileName   string `json:"file_name"`
	TargetFile string `json:"target_file,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

func (h *ConvertHandler) ProcessFiles(c *gin.Context) {
	var req ProcessFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	results := make([]ProcessFileResult, 0, len(req.Files))
	successCount := 0
	failureCount := 0

	for _, fileItem := range req.Files {
		result := h.processOneFile(c, fileItem)
		results = append(results, result)

		if result.Success {
			successCount++
		} else {
			failureCount++
		}
	}

	statusCode := http.StatusOK
	if failureCount > 0 && successCount == 0 {
		statusCode = http.StatusInternalServerError
	} else if failureCount > 0 {
		statusCode = http.StatusMultiStatus
	}

	c.JSON(statusCode, gin.H{
		"message":       fmt.Sprintf("processed %d files: %d succeeded, %d failed", len(req.Files), successCount, failureCount),
		"total":         len(req.Files),
		"succeeded":     successCount,
		"failed":        failureCount,
		"results":       results,
		"source_bucket": h.sourceBucket,
		"target_bucket": h.targetBucket,
	})
}

func (h *ConvertHandler) processOneFile(c *gin.Context, fileItem FileItem) ProcessFileResult {
	result := ProcessFileResult{
		FileName: fileItem.FileName,
		Success:  false,
	}
	ctx := c.Request.Context()

	exists, err := h.minioService.ObjectExistsInBucket(ctx, h.sourceBucket, fileItem.FileName)
	if err != nil {
		result.Error = fmt.Sprintf("failed to check file existence: %v", err)
		return result
	}
	if !exists {
		result.Error = fmt.Sprintf("file not found in bucket: %s", fileItem.FileName)
		return result
	}

	log.Printf("Скачивание книги из %s: %s", h.sourceBucket, fileItem.FileName)
	rawData, err := h.minioService.DownloadFile(ctx, h.sourceBucket, fileItem.FileName)
	if err != nil {
		result.Error = fmt.Sprintf("failed to download file: %v", err)
		return result
	}

	sheets, err := services.DecodeWorkbook(bytes.NewReader(rawData))
	if err != nil {
		result.Error = fmt.Sprintf("invalid workbook: %v", err)
		return result
	}

	log.Printf("Разбор книги: %s", fileItem.FileName)
	courses, err := h.parserService.ParseWorkbook(sheets)
	if err != nil {
		result.Error = fmt.Sprintf("failed to parse workbook: %v", err)
		return result
	}

	jsonData, err := marshalCourses(courses)
	if err != nil {
		result.Error = fmt.Sprintf("failed to encode schedule: %v", err)
		return result
	}

	jsonPath := strings.TrimSuffix(fileItem.FileName, filepath.Ext(fileItem.FileName)) + ".json"
	result.TargetFile = jsonPath

	log.Printf("Загрузка JSON в %s: %s", h.targetBucket, jsonPath)
	err = h.minioService.UploadFile(ctx, h.targetBucket, jsonPath, bytes.NewReader(jsonData), int64(len(jsonData)), "application/json")
	if err != nil {
		result.Error = fmt.Sprintf("failed to upload json: %v", err)
		return result
	}

	h.cacheService.Delete("schedules")
	h.cacheService.Delete("courses:" + jsonPath)

	log.Printf("Книга обработана: %s -> %s", fileItem.FileName, jsonPath)
	result.Success = true
	return result
}

func marshalCourses(courses []models.Course) ([]byte, error) {
	return json.MarshalIndent(courses, "", "  ")
}
