package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/payroll"
)

func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = time.Now().Year()
	}

	holidays, err := h.repository.GetHolidaysForYear(year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "holiday list", holidays)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date" validate:"required,datetime=2006-01-02"`
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	holiday := &domain.Holiday{
		Date:   date,
		Name:   req.Name,
		Region: h.config.HolidayRegion,
	}

	if err := h.repository.CreateHoliday(holiday); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "holiday saved", holiday)
}

// GenerateHolidays fills the holiday table with the statutory NRW calendar
// of one year.
func (h *Handler) GenerateHolidays(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year int `json:"year" validate:"required,min=2000,max=2100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	generated := payroll.HolidaysNRW(req.Year)
	holidays := make([]*domain.Holiday, 0, len(generated))
	for _, ph := range generated {
		holiday := &domain.Holiday{
			Date:   ph.Date,
			Name:   ph.Name,
			Region: h.config.HolidayRegion,
		}
		if err := h.repository.CreateHoliday(holiday); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		holidays = append(holidays, holiday)
	}

	h.successResponse(w, r, "holidays generated", holidays)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		h.badRequest(w, r, errors.New("invalid date, expected YYYY-MM-DD"))
		return
	}

	if err := h.repository.DeleteHoliday(date); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "holiday deleted", nil)
}
