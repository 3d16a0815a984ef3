// Package article provides HTTP handlers for the editorial article CMS.
package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"institute-backend/internal/database"
	"institute-backend/internal/model"
	"institute-backend/internal/utilities"
)

// ArticleController handles article related endpoints
type ArticleController struct {
	DB *database.DBinstanceStruct
}

// NewArticleController creates a new instance of ArticleController
func NewArticleController(db *database.DBinstanceStruct) *ArticleController {
	return &ArticleController{
		DB: db,
	}
}

type articleDraft struct {
	Title    string `json:"title" binding:"required"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Image    string `json:"image"`
}

// GetArticles fetches all articles, newest first.
// @Summary List all articles
// @Tags Article
// @Produce json
// @Success 200 {array} model.Article "Return all articles, newest first"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /articles [get]
func (ac *ArticleController) GetArticles(c *gin.Context) {
	articles := []model.Article{}
	if err := ac.DB.Order("created_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch articles: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// GetArticleByID fetches one article.
// @Summary Get article by ID
// @Tags Article
// @Produce json
// @Param id path string true "ID of desired article"
// @Success 200 {object} model.Article "Return the article with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Article not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /articles/{id} [get]
func (ac *ArticleController) GetArticleByID(c *gin.Context) {
	id := c.Param("id")

	article := model.Article{}
	if err := ac.DB.Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve article: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateArticleHandler publishes a new article.
// @Summary Create article based on given json structure
// @Description Only admins have access to this endpoint
// @Tags Article
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Article body articleDraft true "Input article information"
// @Success 201 {object} model.Article "Successfully create article"
// @Failure 400 {object} utilities.ErrorResponse "Invalid article struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /articles [post]
func (ac *ArticleController) CreateArticleHandler(c *gin.Context) {
	draft := articleDraft{}
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	article := model.Article{
		ID: uuid.NewString(),
		EditableArticleInfo: model.EditableArticleInfo{
			Title:         draft.Title,
			Excerpt:       draft.Excerpt,
			Content:       draft.Content,
			Category:      draft.Category,
			Author:        draft.Author,
			Image:         draft.Image,
			PublishedDate: time.Now().Format("2006-01-02"),
		},
	}

	if err := ac.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create article: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, article)
}

// EditArticle updates an article in place with the same merge-patch
// semantics as job roles.
// @Summary Edit article based on given json structure
// @Description Only admins have access to this endpoint
// @Tags Article
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired article"
// @Param Article body model.EditableArticleInfo true "Partial article information"
// @Success 200 {object} model.Article "Successfully update article"
// @Failure 400 {object} utilities.ErrorResponse "Invalid article struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Article not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /articles/{id} [patch]
func (ac *ArticleController) EditArticle(c *gin.Context) {
	id := c.Param("id")

	article := model.Article{}
	if err := ac.DB.Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve article: %s", err.Error()),
		})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to read request body: %s", err.Error()),
		})
		return
	}
	if err := json.Unmarshal(body, &article.EditableArticleInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := ac.DB.Model(&article).Select("*").Omit("id", "created_at").Updates(article.EditableArticleInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update article: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, article)
}

// DeleteArticle removes an article.
// @Summary Delete given article ID
// @Description Only admins have access to this endpoint
// @Tags Article
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired article"
// @Success 200 {object} utilities.MessageResponse "Successfully delete article"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Article not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /articles/{id} [delete]
func (ac *ArticleController) DeleteArticle(c *gin.Context) {
	id := c.Param("id")

	result := ac.DB.Where("id = ?", id).Delete(&model.Article{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete article: %s", result.Error.Error()),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Article not found"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Article deleted"})
}
