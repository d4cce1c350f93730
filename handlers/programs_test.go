package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"health-portal/models"
)

func programFixtures() []models.Program {
	return []models.Program{
		{ID: 1, Name: "Nutrition", Description: "Weekly counseling", CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: 2, Name: "Yoga", Description: "Morning sessions", CreatedAt: "2024-02-01T10:00:00Z"},
	}
}

func TestProgramListFiltersCaseInsensitively(t *testing.T) {
	backend := &BackendMock{
		ListProgramsFunc: func(ctx context.Context) (*models.ProgramPage, error) {
			return &models.ProgramPage{Programs: programFixtures(), TotalPages: 1}, nil
		},
	}
	router := newTestRouter(backend, &FlashMock{}, nil)

	w := doGET(router, "/programs?search=NUTRI")
	body := w.Body.String()
	if !strings.Contains(body, "Nutrition") {
		t.Error("expected matching program")
	}
	if strings.Contains(body, "Yoga") {
		t.Error("non-matching program must be filtered out")
	}
}

func TestProgramListFilterMatchesDescription(t *testing.T) {
	backend := &BackendMock{
		ListProgramsFunc: func(ctx context.Context) (*models.ProgramPage, error) {
			return &models.ProgramPage{Programs: programFixtures(), TotalPages: 1}, nil
		},
	}
	router := newTestRouter(backend, &FlashMock{}, nil)

	w := doGET(router, "/programs?search=morning")
	body := w.Body.String()
	if !strings.Contains(body, "Yoga") {
		t.Error("expected match on description")
	}
	if strings.Contains(body, "Nutrition") {
		t.Error("non-matching program must be filtered out")
	}
}

func TestProgramListErrorBeatsEmpty(t *testing.T) {
	backend := &BackendMock{
		ListProgramsFunc: func(ctx context.Context) (*models.ProgramPage, error) {
			return nil, errors.New("boom")
		},
	}
	router := newTestRouter(backend, &FlashMock{}, nil)

	body := doGET(router, "/programs").Body.String()
	if !strings.Contains(body, "Failed to load programs") {
		t.Error("expected error banner")
	}
	if strings.Contains(body, "No programs found") {
		t.Error("error state must suppress the empty state")
	}
}

func TestProgramCreateSuccessLandsOnListWithFlash(t *testing.T) {
	backend := &BackendMock{
		CreateProgramFunc: func(ctx context.Context, in models.ProgramInput) (*models.Program, error) {
			if in.Name != "Nutrition" || in.Description != "Weekly counseling" {
				t.Errorf("unexpected input: %+v", in)
			}
			return &models.Program{ID: 7, Name: in.Name, Description: in.Description}, nil
		},
	}
	flash := &FlashMock{}
	router := newTestRouter(backend, flash, &KafkaMock{})

	form := url.Values{
		"name":        {"Nutrition"},
		"description": {"Weekly counseling"},
	}
	w := doPOST(router, "/programs/new", form)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/programs" {
		t.Errorf("redirect = %q, want /programs", loc)
	}
	if !flash.Stored("Program created successfully") {
		t.Error("expected success flash message")
	}
}

func TestProgramCreateValidationBlocksSubmission(t *testing.T) {
	router := newTestRouter(&BackendMock{}, &FlashMock{}, nil)

	w := doPOST(router, "/programs/new", url.Values{"name": {"X"}})
	body := w.Body.String()
	if !strings.Contains(body, "Too Short!") {
		t.Error("expected name length message")
	}
	if !strings.Contains(body, "Required") {
		t.Error("expected description required message")
	}
}

func TestProgramDeleteTwoStepGesture(t *testing.T) {
	backend := &BackendMock{
		ListProgramsFunc: func(ctx context.Context) (*models.ProgramPage, error) {
			return &models.ProgramPage{Programs: programFixtures(), TotalPages: 1}, nil
		},
	}
	flash := &FlashMock{}
	router := newTestRouter(backend, flash, nil)

	// Шаг 1: пометили к удалению, сетевых вызовов нет
	w := doGET(router, "/programs?delete=1")
	if backend.DeleteProgramCalls != 0 {
		t.Errorf("DeleteProgram calls = %d, want 0 before confirmation", backend.DeleteProgramCalls)
	}
	if !strings.Contains(w.Body.String(), `delete the program "Nutrition"`) {
		t.Error("expected confirmation banner naming the program")
	}

	// Шаг 2: подтвердили
	w = doPOST(router, "/programs/1/delete", url.Values{})
	if backend.DeleteProgramCalls != 1 {
		t.Errorf("DeleteProgram calls = %d, want 1 after confirmation", backend.DeleteProgramCalls)
	}
	if !flash.Stored("Program deleted successfully") {
		t.Error("expected delete flash message")
	}
}

func TestProgramEditFormPrefillsValues(t *testing.T) {
	backend := &BackendMock{
		GetProgramFunc: func(ctx context.Context, id int) (*models.Program, error) {
			return &models.Program{ID: 1, Name: "Nutrition", Description: "Weekly counseling"}, nil
		},
	}
	router := newTestRouter(backend, &FlashMock{}, nil)

	body := doGET(router, "/programs/edit/1").Body.String()
	if !strings.Contains(body, `value="Nutrition"`) {
		t.Error("expected prefilled name")
	}
	if !strings.Contains(body, "Weekly counseling") {
		t.Error("expected prefilled description")
	}
	if !strings.Contains(body, "Update Program") {
		t.Error("expected edit-mode submit label")
	}
}
