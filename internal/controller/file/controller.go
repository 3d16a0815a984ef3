// Package file provides HTTP handlers for file upload and retrieval.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"institute-backend/internal/database"
	"institute-backend/internal/model"
	"institute-backend/internal/utilities"
)

const uploadObjectPrefix = "uploads"

// downloadCacheControl keeps retrieved files privately cacheable for a
// short window only.
const downloadCacheControl = "private, max-age=300"

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
	}
}

// uploadResponse carries the durable reference a candidate later
// attaches to an application submission.
type uploadResponse struct {
	FileID      int    `json:"fileId"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// UploadFile stores one uploaded file and returns its durable reference.
// Content constraints are enforced by the client; the store accepts
// anything within the request size cap.
// @Summary Upload a file prior to application submission
// @Description Only file smaller than 10 MB is permitted
// @Tags File
// @Accept mpfd
// @Produce json
// @Param file formData file true "Upload your file"
// @Success 201 {object} uploadResponse "Durable file reference"
// @Failure 400 {object} utilities.ErrorResponse "No file in request"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /files [post]
func (fc *FileController) UploadFile(c *gin.Context) {

	rawFile, err := c.FormFile("file")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return
	}

	contentType := rawFile.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file := model.File{
		Filename:    rawFile.Filename,
		ContentType: contentType,
		Extension:   strings.ToLower(filepath.Ext(rawFile.Filename)),
		Size:        int64(len(fileBytes)),
	}

	if err := fc.persistFileData(&file, fileBytes); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store file: %s", err.Error()),
		})
		return
	}

	if err := fc.DB.Create(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to record file: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{
		FileID:      file.ID,
		URL:         fmt.Sprintf("/api/v1/files/%d", file.ID),
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
	})
}

// GetFile streams a stored file back with its original content type and
// filename, inline disposition, and a short private cache lifetime.
// @Summary Retrieve a stored file
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	var file model.File
	id := c.Param("id")

	if err := fc.DB.First(&file, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
		return
	}

	fc.writeFileResponse(c, &file)
}

func (fc *FileController) writeFileResponse(c *gin.Context, file *model.File) {
	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Filename))
	c.Writer.Header().Set("Content-Type", file.ContentType)
	c.Writer.Header().Set("Cache-Control", downloadCacheControl)

	if file.StorageObjectName != nil {
		if fc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := fc.Storage.DownloadFile(*file.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("failed to close storage reader: %v", err)
			}
		}()

		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		if _, err := io.Copy(c.Writer, reader); err != nil {
			fc.handleWriterError(c, err)
		}
		return
	}

	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	if _, err := c.Writer.Write(file.Content); err != nil {
		fc.handleWriterError(c, err)
	}
}

func (fc *FileController) handleWriterError(c *gin.Context, err error) {
	log.Printf("failed to send file content: %v", err)
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}

func (fc *FileController) persistFileData(file *model.File, fileBytes []byte) error {
	if fc.Storage == nil {
		file.Content = fileBytes
		file.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", uploadObjectPrefix, uuid.NewString(), file.Extension)
	if err := fc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.StorageObjectName = &objectName
	file.Content = nil
	return nil
}
