package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"health-portal/forms"
	"health-portal/models"
	"health-portal/utils"
)

type EnrollmentHandler struct {
	backend models.Backend
	flash   utils.FlashStore
	kafka   utils.KafkaProducer
}

func NewEnrollmentHandler(backend models.Backend, flash utils.FlashStore, kafka utils.KafkaProducer) *EnrollmentHandler {
	return &EnrollmentHandler{backend: backend, flash: flash, kafka: kafka}
}

// NewForm — форма зачисления. Оба селекта должны загрузиться, иначе
// страница целиком в состоянии ошибки. Пришедший с карточки клиента
// ?client_id= блокирует селект клиента.
func (h *EnrollmentHandler) NewForm(c *gin.Context) {
	clients, programs, err := h.loadSelectData(c)
	if err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "enrollment_form.html",
			"Failed to load necessary data. Please try again later.")
		return
	}

	values := forms.EnrollmentValues{
		ClientID:       c.Query("client_id"),
		EnrollmentDate: time.Now().Format("2006-01-02"),
	}

	c.HTML(http.StatusOK, "enrollment_form.html", gin.H{
		"Clients":     clients,
		"Programs":    programs,
		"Values":      values,
		"Preselected": values.ClientID != "",
	})
}

func (h *EnrollmentHandler) Create(c *gin.Context) {
	var values forms.EnrollmentValues
	if err := c.ShouldBind(&values); err != nil {
		c.Redirect(http.StatusFound, "/enrollments/new")
		return
	}
	preselected := c.PostForm("preselected") == "1"

	if fieldErrors := forms.Validate(values.Rules()); fieldErrors != nil {
		h.renderForm(c, values, preselected, fieldErrors, "")
		return
	}

	enrollment, err := h.backend.EnrollClient(c.Request.Context(), values.ClientIDInt(), values.Input())
	if err != nil {
		c.Error(err)
		h.renderForm(c, values, preselected, nil,
			apiMessage(err, "Failed to enroll client. Please try again later."))
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event":      "client_enrolled",
		"id":         enrollment.ID,
		"client_id":  values.ClientIDInt(),
		"program_id": enrollment.ProgramID,
	})

	setFlash(c, h.flash, "Client enrolled successfully")
	c.Redirect(http.StatusSeeOther, "/clients/"+strconv.Itoa(values.ClientIDInt()))
}

// renderForm перерисовывает форму с введёнными значениями: селекты
// приходится загрузить заново, состояние между запросами не живёт.
func (h *EnrollmentHandler) renderForm(c *gin.Context, values forms.EnrollmentValues, preselected bool, fieldErrors map[string]string, errMsg string) {
	clients, programs, err := h.loadSelectData(c)
	if err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "enrollment_form.html",
			"Failed to load necessary data. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "enrollment_form.html", gin.H{
		"Clients":     clients,
		"Programs":    programs,
		"Values":      values,
		"Preselected": preselected,
		"FieldErrors": fieldErrors,
		"Error":       errMsg,
	})
}

func (h *EnrollmentHandler) loadSelectData(c *gin.Context) ([]models.Client, []models.Program, error) {
	ctx := c.Request.Context()

	var (
		clientPage  *models.ClientPage
		programPage *models.ProgramPage
		clientErr   error
		programErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		clientPage, clientErr = h.backend.ListClients(ctx, "", 0)
	}()
	go func() {
		defer wg.Done()
		programPage, programErr = h.backend.ListPrograms(ctx)
	}()
	wg.Wait()

	if clientErr != nil {
		return nil, nil, clientErr
	}
	if programErr != nil {
		return nil, nil, programErr
	}
	return clientPage.Clients, programPage.Programs, nil
}
