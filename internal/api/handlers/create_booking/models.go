package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	createBooking "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// CreateBookingRequest HTTP request model
// Расписание задается либо session, либо парой startTime/endTime
type CreateBookingRequest struct {
	VenueID   string  `json:"venueId"`
	Date      string  `json:"date"`                // "2024-05-20"
	Session   *string `json:"session,omitempty"`   // "MORNING" / "AFTERNOON" / "EVENING" / "FULL_DAY"
	StartTime *string `json:"startTime,omitempty"` // "11:00"
	EndTime   *string `json:"endTime,omitempty"`   // "13:00"
	Purpose   string  `json:"purpose,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string  `json:"id"`
	VenueID   string  `json:"venueId"`
	UserID    string  `json:"userId"`
	UserName  string  `json:"userName"`
	Date      string  `json:"date"`
	Session   *string `json:"session,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Purpose   string  `json:"purpose,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		UserID:  userID,
		VenueID: r.VenueID,
		Date:    date,
		Purpose: r.Purpose,
	}

	if r.Session != nil {
		session := domain.SessionSlot(*r.Session)
		req.Session = &session
	}

	// Парсим время, формат проверяется на месте
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:        resp.ID,
		VenueID:   resp.VenueID,
		UserID:    resp.UserID,
		UserName:  resp.UserName,
		Date:      resp.Date.Format(domain.DateFormat),
		Purpose:   resp.Purpose,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.Session != nil {
		session := string(*resp.Session)
		out.Session = &session
	}
	if resp.StartTime != nil {
		start := resp.StartTime.String()
		out.StartTime = &start
	}
	if resp.EndTime != nil {
		end := resp.EndTime.String()
		out.EndTime = &end
	}

	return out
}
