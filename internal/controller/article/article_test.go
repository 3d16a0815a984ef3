package article

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"institute-backend/internal/database"
	"institute-backend/internal/model"
	"institute-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func articleRouter() *gin.Engine {
	r := gin.Default()
	ac := NewArticleController(testDB)
	r.GET("/articles", ac.GetArticles)
	r.GET("/articles/:id", ac.GetArticleByID)
	r.POST("/articles", ac.CreateArticleHandler)
	r.PATCH("/articles/:id", ac.EditArticle)
	r.DELETE("/articles/:id", ac.DeleteArticle)
	return r
}

func TestCreateArticle_RoundTrip(t *testing.T) {
	r := articleRouter()

	body := gin.H{
		"title":    "New lab wing opens",
		"excerpt":  "The institute expands.",
		"content":  "Full story body.",
		"category": "News",
		"author":   "Communications Office",
	}

	rec, resp := testutil.MakeJSONRequest(body, "", r, "/articles", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	id, _ := resp["id"].(string)
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, resp["publishedDate"])

	rec, resp = testutil.MakeJSONRequest(nil, "", r, "/articles/"+id, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New lab wing opens", resp["title"])
}

func TestCreateArticle_MissingContent(t *testing.T) {
	r := articleRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "Headline only"}, "", r, "/articles", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditArticle_PartialPatch(t *testing.T) {
	r := articleRouter()
	art := createTestArticle(t)

	rec, _ := testutil.MakeJSONRequest(
		gin.H{"excerpt": "Updated excerpt", "id": "hijacked"},
		"", r, "/articles/"+art.ID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)

	stored := model.Article{}
	assert.NoError(t, testDB.Where("id = ?", art.ID).First(&stored).Error)
	assert.Equal(t, "Updated excerpt", stored.Excerpt)
	assert.Equal(t, art.Title, stored.Title)
}

func TestDeleteArticle(t *testing.T) {
	r := articleRouter()
	art := createTestArticle(t)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/articles/"+art.ID, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/articles/"+art.ID, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func createTestArticle(t *testing.T) model.Article {
	t.Helper()
	art := model.Article{
		ID: uuid.NewString(),
		EditableArticleInfo: model.EditableArticleInfo{
			Title:         "Seed article",
			Content:       "Seed content.",
			Category:      "Research",
			Author:        "Lab Staff",
			PublishedDate: time.Now().Format("2006-01-02"),
		},
	}
	assert.NoError(t, testDB.Create(&art).Error)
	return art
}
