package models

import (
	"encoding/json"
	"fmt"
)

// Бэкенд отдаёт коллекции в двух видах: голый массив либо конверт
// {results, count}. Решаем это здесь один раз, страницы видят только
// items + totalPages.

const pageSize = 10

type ClientPage struct {
	Clients    []Client
	TotalPages int
}

type ProgramPage struct {
	Programs   []Program
	TotalPages int
}

type pagedEnvelope struct {
	Count   *int            `json:"count"`
	Results json.RawMessage `json:"results"`
}

// decodeCollection распаковывает ответ в items и возвращает число страниц:
// ceil(count/10) для конверта, 1 для голого массива.
func decodeCollection(data []byte, items interface{}) (int, error) {
	var env pagedEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Count != nil && env.Results != nil {
		if err := json.Unmarshal(env.Results, items); err != nil {
			return 0, fmt.Errorf("failed to decode paged results: %w", err)
		}
		pages := (*env.Count + pageSize - 1) / pageSize
		if pages < 1 {
			pages = 1
		}
		return pages, nil
	}

	if err := json.Unmarshal(data, items); err != nil {
		return 0, fmt.Errorf("failed to decode collection: %w", err)
	}
	return 1, nil
}
