package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"health-portal/forms"
	"health-portal/models"
	"health-portal/utils"
)

type ProgramHandler struct {
	backend models.Backend
	flash   utils.FlashStore
	kafka   utils.KafkaProducer
}

func NewProgramHandler(backend models.Backend, flash utils.FlashStore, kafka utils.KafkaProducer) *ProgramHandler {
	return &ProgramHandler{backend: backend, flash: flash, kafka: kafka}
}

// List — страница программ. В отличие от клиентов фильтр локальный:
// забираем коллекцию целиком и отбираем подстрокой по имени и описанию.
// ?delete=<id> включает баннер подтверждения удаления этой программы.
func (h *ProgramHandler) List(c *gin.Context) {
	result, err := h.backend.ListPrograms(c.Request.Context())
	if err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "programs_list.html",
			"Failed to load programs. Please try again later.")
		return
	}

	search := c.Query("search")
	programs := filterPrograms(result.Programs, search)

	var toDelete *models.Program
	if deleteID, err := strconv.Atoi(c.Query("delete")); err == nil {
		for i := range result.Programs {
			if result.Programs[i].ID == deleteID {
				toDelete = &result.Programs[i]
				break
			}
		}
	}

	c.HTML(http.StatusOK, "programs_list.html", gin.H{
		"Flash":    takeFlash(c, h.flash),
		"Programs": programs,
		"Search":   search,
		"ToDelete": toDelete,
	})
}

// filterPrograms — регистронезависимое вхождение в name или description.
func filterPrograms(programs []models.Program, search string) []models.Program {
	if search == "" {
		return programs
	}
	needle := strings.ToLower(search)
	filtered := make([]models.Program, 0, len(programs))
	for _, p := range programs {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (h *ProgramHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "program_form.html", gin.H{
		"Values": forms.ProgramValues{},
	})
}

func (h *ProgramHandler) Create(c *gin.Context) {
	var values forms.ProgramValues
	if err := c.ShouldBind(&values); err != nil {
		c.HTML(http.StatusBadRequest, "program_form.html", gin.H{
			"Values": values,
			"Error":  "Invalid form submission",
		})
		return
	}

	if fieldErrors := forms.Validate(values.Rules()); fieldErrors != nil {
		c.HTML(http.StatusOK, "program_form.html", gin.H{
			"Values":      values,
			"FieldErrors": fieldErrors,
		})
		return
	}

	program, err := h.backend.CreateProgram(c.Request.Context(), values.Input())
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusOK, "program_form.html", gin.H{
			"Values": values,
			"Error":  apiMessage(err, "Failed to save program. Please try again later."),
		})
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event": "program_created",
		"id":    program.ID,
		"name":  program.Name,
	})

	setFlash(c, h.flash, "Program created successfully")
	c.Redirect(http.StatusSeeOther, "/programs")
}

func (h *ProgramHandler) EditForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/programs")
		return
	}

	program, err := h.backend.GetProgram(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.HTML(http.StatusNotFound, "program_form.html", gin.H{
				"EditID": id,
				"Error":  "Program not found",
			})
			return
		}
		c.Error(err)
		renderError(c, http.StatusBadGateway, "program_form.html",
			"Failed to load program data. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "program_form.html", gin.H{
		"EditID": id,
		"Values": forms.ProgramValuesFrom(program),
	})
}

func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/programs")
		return
	}

	var values forms.ProgramValues
	if err := c.ShouldBind(&values); err != nil {
		c.HTML(http.StatusBadRequest, "program_form.html", gin.H{
			"EditID": id,
			"Values": values,
			"Error":  "Invalid form submission",
		})
		return
	}

	if fieldErrors := forms.Validate(values.Rules()); fieldErrors != nil {
		c.HTML(http.StatusOK, "program_form.html", gin.H{
			"EditID":      id,
			"Values":      values,
			"FieldErrors": fieldErrors,
		})
		return
	}

	program, err := h.backend.UpdateProgram(c.Request.Context(), id, values.Input())
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusOK, "program_form.html", gin.H{
			"EditID": id,
			"Values": values,
			"Error":  apiMessage(err, "Failed to save program. Please try again later."),
		})
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event": "program_updated",
		"id":    program.ID,
		"name":  program.Name,
	})

	setFlash(c, h.flash, "Program updated successfully")
	c.Redirect(http.StatusSeeOther, "/programs")
}

// Delete достижим только из баннера подтверждения на списке программ.
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/programs")
		return
	}

	if err := h.backend.DeleteProgram(c.Request.Context(), id); err != nil {
		c.Error(err)
		renderError(c, http.StatusBadGateway, "programs_list.html",
			"Failed to delete program. Please try again later.")
		return
	}

	publishEvent(h.kafka, map[string]interface{}{
		"event": "program_deleted",
		"id":    id,
	})

	setFlash(c, h.flash, "Program deleted successfully")
	c.Redirect(http.StatusSeeOther, "/programs")
}
