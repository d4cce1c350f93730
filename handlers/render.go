package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"health-portal/utils"
)

const flashCookie = "portal_flash"

// setFlash кладёт одноразовое сообщение и вешает токен на редирект.
// Недоступный Redis не должен ломать сам переход — сообщение просто теряется.
func setFlash(c *gin.Context, store utils.FlashStore, message string) {
	if store == nil {
		return
	}
	token, err := store.Put(c.Request.Context(), message)
	if err != nil {
		log.Printf("Failed to store flash message: %v", err)
		return
	}
	c.SetCookie(flashCookie, token, 60, "/", "", false, true)
}

// takeFlash забирает сообщение текущего перехода (ровно один раз) и
// сразу гасит cookie.
func takeFlash(c *gin.Context, store utils.FlashStore) string {
	token, err := c.Cookie(flashCookie)
	if err != nil || token == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	if store == nil {
		return ""
	}
	message, err := store.Take(c.Request.Context(), token)
	if err != nil {
		log.Printf("Failed to take flash message: %v", err)
		return ""
	}
	return message
}

// publishEvent шлёт аудит-событие в Kafka, не блокируя ответ страницы.
func publishEvent(producer utils.KafkaProducer, event map[string]interface{}) {
	if producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonData, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal Kafka event: %v", err)
			return
		}
		if err := producer.SendMessage(ctx, utils.EventsTopic, nil, jsonData); err != nil {
			log.Printf("Failed to send Kafka message: %v", err)
		}
	}()
}

// renderError — страница в состоянии ошибки: баннер вместо данных.
func renderError(c *gin.Context, status int, template string, message string) {
	c.HTML(status, template, gin.H{"Error": message})
}
