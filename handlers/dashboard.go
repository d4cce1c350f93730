package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"health-portal/models"
	"health-portal/utils"
)

type DashboardHandler struct {
	backend models.Backend
	flash   utils.FlashStore
}

func NewDashboardHandler(backend models.Backend, flash utils.FlashStore) *DashboardHandler {
	return &DashboardHandler{backend: backend, flash: flash}
}

// Show собирает сводку: клиенты и программы запрашиваются параллельно,
// частичный результат не показываем — любая из двух ошибок валит страницу.
func (h *DashboardHandler) Show(c *gin.Context) {
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

	if clientErr != nil || programErr != nil {
		if clientErr != nil {
			c.Error(clientErr)
		}
		if programErr != nil {
			c.Error(programErr)
		}
		renderError(c, http.StatusBadGateway, "dashboard.html",
			"Failed to load dashboard data. Please try again later.")
		return
	}

	clients := clientPage.Clients
	programs := programPage.Programs

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Flash":          takeFlash(c, h.flash),
		"TotalClients":   len(clients),
		"TotalPrograms":  len(programs),
		"RecentClients":  firstClients(clients, 5),
		"RecentPrograms": firstPrograms(programs, 5),
	})
}

func firstClients(clients []models.Client, n int) []models.Client {
	if len(clients) < n {
		return clients
	}
	return clients[:n]
}

func firstPrograms(programs []models.Program, n int) []models.Program {
	if len(programs) < n {
		return programs
	}
	return programs[:n]
}
