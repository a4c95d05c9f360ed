package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-smartexit/internal/directory"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

// meetingRequest is the booking payload. Date is YYYY-MM-DD, Time is a slot
// label such as "1:30 PM" and Duration is in minutes.
type meetingRequest struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Duration   int    `json:"duration"`
}

func readMeetingRequest(r *http.Request) (meetingRequest, error) {
	var req meetingRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("decode form: %w", err)
		}
		req.EmployeeID = r.PostForm.Get("employeeId")
		req.Name = r.PostForm.Get("name")
		req.Email = r.PostForm.Get("email")
		req.Date = r.PostForm.Get("date")
		req.Time = r.PostForm.Get("time")
		if raw := r.PostForm.Get("duration"); raw != "" {
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				return req, errors.New("duration must be a number of minutes")
			}
			req.Duration = minutes
		}
		return req, nil
	}
	err := decodeBody(r, &req)
	return req, err
}

func (s *Server) resolveEmployee(req meetingRequest) (directory.Employee, bool) {
	if req.EmployeeID == "" {
		return directory.Employee{Name: strings.TrimSpace(req.Name), Email: strings.TrimSpace(req.Email)}, true
	}
	if emp, ok := directory.Find(s.employees, req.EmployeeID); ok {
		return emp, true
	}
	if profile := directory.OffboardingPage().Employee; profile.ID == req.EmployeeID {
		return profile.Employee, true
	}
	return directory.Employee{}, false
}

func (s *Server) handleScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, "calendar integration is not configured")
		return
	}
	req, err := readMeetingRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	emp, ok := s.resolveEmployee(req)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("employee %q not found", req.EmployeeID))
		return
	}
	if emp.Name == "" {
		respondError(w, http.StatusBadRequest, "employee name is required")
		return
	}

	sreq := scheduler.Request{
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		Duration:      time.Duration(req.Duration) * time.Minute,
	}
	if req.Date != "" {
		day, err := time.ParseInLocation(model.ISODateLayout, req.Date, s.scheduler.Location())
		if err != nil {
			respondError(w, http.StatusBadRequest, "date must use YYYY-MM-DD")
			return
		}
		sreq.Date = day
	}
	if req.Time != "" {
		slot, err := scheduler.ParseSlot(req.Time)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		sreq.Slot = &slot
	}

	meeting, err := s.scheduler.Schedule(r.Context(), sreq)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, meeting)
}
