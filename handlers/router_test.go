package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"health-portal/models"
	"health-portal/utils"
)

func newTestRouter(backend models.Backend, flash utils.FlashStore, kafka utils.KafkaProducer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetFuncMap(template.FuncMap{
		"displayDate": models.DisplayDate,
	})
	router.LoadHTMLGlob("../templates/*.html")

	dashboard := NewDashboardHandler(backend, flash)
	clients := NewClientHandler(backend, flash, kafka)
	programs := NewProgramHandler(backend, flash, kafka)
	enrollments := NewEnrollmentHandler(backend, flash, kafka)

	router.GET("/", dashboard.Show)
	router.GET("/clients", clients.List)
	router.GET("/clients/new", clients.NewForm)
	router.POST("/clients/new", clients.Create)
	router.GET("/clients/:id", clients.Detail)
	router.GET("/clients/edit/:id", clients.EditForm)
	router.POST("/clients/edit/:id", clients.Update)
	router.POST("/clients/:id/delete", clients.Delete)
	router.GET("/programs", programs.List)
	router.GET("/programs/new", programs.NewForm)
	router.POST("/programs/new", programs.Create)
	router.GET("/programs/edit/:id", programs.EditForm)
	router.POST("/programs/edit/:id", programs.Update)
	router.POST("/programs/:id/delete", programs.Delete)
	router.GET("/enrollments/new", enrollments.NewForm)
	router.POST("/enrollments/new", enrollments.Create)

	return router
}

func doGET(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func doPOST(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}
