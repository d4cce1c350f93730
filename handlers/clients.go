package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"health-portal/forms"
	"health-portal/models"
	"health-portal/utils"
)

type ClientHandler struct {
	backend models.Backend
	flash   utils.FlashStore
	kafka   utils.KafkaProducer
}

func NewClientHandler(backend models.Backend, flash utils.FlashStore, kafka utils.KafkaProducer) *ClientHandler {
	return &ClientHandler{backend: backend, flash: flash, kafka: kafka}
}

// List — страница клиентов. Поиск уходит на бэкенд query-параметром,
// пагинация серверная: каждая смена страницы — новый запрос.
func (h *ClientHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	result, err := h.backend.ListClients(c.Request.Context(), search, page)
	if err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "clients_list.html",
			"Failed to load clients. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "clients_list.html", gin.H{
		"Flash":       takeFlash(c, h.flash),
		"Clients":     result.Clients,
		"Search":      search,
		"CurrentPage": page,
		"TotalPages":  result.TotalPages,
		"Pages":       pageNumbers(result.TotalPages),
	})
}

// Detail показывает карточку клиента. Если бэкенд не вложил enrollments
// в ответ, делаем отдельный запрос до рендера таблицы программ.
func (h *ClientHandler) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/clients")
		return
	}

	ctx := c.Request.Context()
	client, err := h.backend.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.HTML(http.StatusNotFound, "client_detail.html", gin.H{"NotFound": true})
			return
		}
		c.Error(err)
		renderError(c, http.StatusBadGateway, "client_detail.html",
			"Failed to load client data. Please try again later.")
		return
	}

	enrollments := client.Enrollments
	if enrollments == nil {
		enrollments, err = h.backend.ListClientEnrollments(ctx, id)
		if err != nil {
			c.Error(err)
			renderError(c, http.StatusBadGateway, "client_detail.html",
				"Failed to load client data. Please try again later.")
			return
		}
	}

	c.HTML(http.StatusOK, "client_detail.html", gin.H{
		"Flash":         takeFlash(c, h.flash),
		"Client":        client,
		"Enrollments":   enrollments,
		"ConfirmDelete": c.Query("confirm_delete") == "1",
	})
}

func (h *ClientHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "client_form.html", gin.H{
		"Values": forms.ClientValues{},
	})
}

func (h *ClientHandler) Create(c *gin.Context) {
	var values forms.ClientValues
	if err := c.ShouldBind(&values); err != nil {
		c.HTML(http.StatusBadRequest, "client_form.html", gin.H{
			"Values": values,
			"Error":  "Invalid form submission",
		})
		return
	}

	if fieldErrors := forms.Validate(values.Rules()); fieldErrors != nil {
		c.HTML(http.StatusOK, "client_form.html", gin.H{
			"Values":      values,
			"FieldErrors": fieldErrors,
		})
		return
	}

	client, err := h.backend.CreateClient(c.Request.Context(), values.Input())
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusOK, "client_form.html", gin.H{
			"Values": values,
			"Error":  apiMessage(err, "Failed to save client. Please try again later."),
		})
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event":    "client_created",
		"id":       client.ID,
		"fullName": client.FullName(),
	})

	setFlash(c, h.flash, "Client created successfully")
	c.Redirect(http.StatusSeeOther, "/clients/"+strconv.Itoa(client.ID))
}

func (h *ClientHandler) EditForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/clients")
		return
	}

	client, err := h.backend.GetClient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.HTML(http.StatusNotFound, "client_form.html", gin.H{
				"EditID": id,
				"Error":  "Client not found",
			})
			return
		}
		c.Error(err)
		renderError(c, http.StatusBadGateway, "client_form.html",
			"Failed to load client data. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "client_form.html", gin.H{
		"EditID": id,
		"Values": forms.ClientValuesFrom(client),
	})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/clients")
		return
	}

	var values forms.ClientValues
	if err := c.ShouldBind(&values); err != nil {
		c.HTML(http.StatusBadRequest, "client_form.html", gin.H{
			"EditID": id,
			"Values": values,
			"Error":  "Invalid form submission",
		})
		return
	}

	if fieldErrors := forms.Validate(values.Rules()); fieldErrors != nil {
		c.HTML(http.StatusOK, "client_form.html", gin.H{
			"EditID":      id,
			"Values":      values,
			"FieldErrors": fieldErrors,
		})
		return
	}

	client, err := h.backend.UpdateClient(c.Request.Context(), id, values.Input())
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusOK, "client_form.html", gin.H{
			"EditID": id,
			"Values": values,
			"Error":  apiMessage(err, "Failed to save client. Please try again later."),
		})
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event":    "client_updated",
		"id":       client.ID,
		"fullName": client.FullName(),
	})

	setFlash(c, h.flash, "Client updated successfully")
	c.Redirect(http.StatusSeeOther, "/clients/"+strconv.Itoa(id))
}

// Delete вызывается только из формы внутри баннера подтверждения
// (?confirm_delete=1 на карточке клиента).
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/clients")
		return
	}

	if err := h.backend.DeleteClient(c.Request.Context(), id); err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "client_detail.html",
			"Failed to delete client. Please try again later.")
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event": "client_deleted",
		"id":    id,
	})

	setFlash(c, h.flash, "Client deleted successfully")
	c.Redirect(http.StatusSeeOther, "/clients")
}

func apiMessage(err error, fallback string) string {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func pageNumbers(total int) []int {
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
