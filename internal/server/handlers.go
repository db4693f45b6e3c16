package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/storage"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

const maxBody = 1 << 20

func (s *Server) listByDate(c *gin.Context) {
	date, ok := s.dateParam(c, "date")
	if !ok {
		return
	}
	s.respondRange(c, date, date)
}

func (s *Server) listByRange(c *gin.Context) {
	start, ok := s.dateParam(c, "start_date")
	if !ok {
		return
	}
	end, ok := s.dateParam(c, "end_date")
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, FieldErrors{"end_date": {"End date must not be before start date."}})
		return
	}
	s.respondRange(c, start, end)
}

func (s *Server) listByMonth(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, FieldErrors{"month": {"Enter a month between 01 and 12."}})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 || year > 9999 {
		c.JSON(http.StatusBadRequest, FieldErrors{"year": {"Enter a valid year."}})
		return
	}
	first, last := utils.MonthBounds(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	s.respondRange(c, first, last)
}

// presetRange resolves a named window relative to today.
func presetRange(preset string, today time.Time) (time.Time, time.Time) {
	switch preset {
	case "work-week":
		return utils.WorkWeek(today)
	case "month":
		return utils.MonthBounds(today)
	default:
		return utils.StartOfWeek(today, time.Sunday), utils.EndOfWeek(today, time.Sunday)
	}
}

func (s *Server) listPreset(preset string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end := presetRange(preset, s.now())
		s.respondRange(c, start, end)
	}
}

func (s *Server) respondRange(c *gin.Context, start, end time.Time) {
	records, err := s.store.ListByRange(c.Request.Context(), utils.FormatDate(start), utils.FormatDate(end))
	if err != nil {
		s.internalError(c, "failed to list interviews", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, "failed to get interview", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) create(c *gin.Context) {
	var r models.Interview
	dec := json.NewDecoder(io.LimitReader(c.Request.Body, maxBody))
	if err := dec.Decode(&r); err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{"non_field_errors": {"Invalid JSON body."}})
		return
	}
	r.ID = nil
	normalize(&r)
	if fe := s.validate(r); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	created, err := s.store.Create(c.Request.Context(), r)
	if err != nil {
		s.internalError(c, "failed to create interview", err)
		return
	}
	s.metrics.mutation("create")
	c.JSON(http.StatusCreated, created)
}

// patch applies an RFC 7386 merge patch to the stored record.
func (s *Server) patch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{"non_field_errors": {"Could not read body."}})
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{"non_field_errors": {"Patch must be a JSON object."}})
		return
	}
	delete(fields, "id")

	existing, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.storeError(c, "failed to get interview", err)
		return
	}

	original, err := json.Marshal(existing)
	if err != nil {
		s.internalError(c, "failed to encode interview", err)
		return
	}
	patchDoc, err := json.Marshal(fields)
	if err != nil {
		s.internalError(c, "failed to encode patch", err)
		return
	}
	merged, err := jsonpatch.MergePatch(original, patchDoc)
	if err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{"non_field_errors": {"Invalid merge patch."}})
		return
	}

	var updated models.Interview
	if err := json.Unmarshal(merged, &updated); err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{"non_field_errors": {"Patch has fields of the wrong type."}})
		return
	}
	updated.ID = existing.ID
	normalize(&updated)
	if fe := s.validate(updated); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}

	saved, err := s.store.Update(c.Request.Context(), updated)
	if err != nil {
		s.storeError(c, "failed to update interview", err)
		return
	}
	s.metrics.mutation("update")
	c.JSON(http.StatusOK, saved)
}

func (s *Server) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.storeError(c, "failed to delete interview", err)
		return
	}
	s.metrics.mutation("delete")
	c.Status(http.StatusNoContent)
}

func (s *Server) dateParam(c *gin.Context, name string) (time.Time, bool) {
	d, err := utils.ParseDate(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, FieldErrors{name: {"Date has wrong format. Use YYYY-MM-DD."}})
		return time.Time{}, false
	}
	return d, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return 0, false
	}
	return id, true
}

func (s *Server) storeError(c *gin.Context, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	s.internalError(c, msg, err)
}

// internalError logs err and answers 500 without exposing it.
func (s *Server) internalError(c *gin.Context, msg string, err error) {
	logger.Error(msg, "error", err, "request_id", c.GetString("request_id"))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
}
