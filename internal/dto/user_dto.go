package dto

// UpdateMeRequest carries the self-service editable fields. Password changes
// are rejected at the controller before this is parsed.
type UpdateMeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	DateOfBirth string `json:"dateOfBirth"`

	// Doctor-only profile fields.
	Location        string              `json:"location"`
	ConsultationFee float64             `json:"consultationFee"`
	Availability    map[string][]string `json:"availability"`
}

// ProfileResponse is the populated variant of /users/me: the account plus
// summaries of everything attached to it.
type ProfileResponse struct {
	User         *UserResponse          `json:"user"`
	Doctor       *DoctorResponse        `json:"doctor,omitempty"`
	Appointments []*AppointmentResponse `json:"appointments,omitempty"`
	Chats        []*ChatSummaryResponse `json:"chats,omitempty"`
	Orders       []*OrderResponse       `json:"orders,omitempty"`
}
