package dto

type RegisterRequestDTO struct {
	TelegramID  int64  `json:"telegram_id" example:"123456789"`
	FullName    string `json:"full_name" example:"Иван Петров"`
	PhoneNumber string `json:"phone_number" example:"+79001234567"`
}

type UserResponseDTO struct {
	ID             int    `json:"id" example:"1"`
	TelegramID     int64  `json:"telegram_id" example:"123456789"`
	FullName       string `json:"full_name" example:"Иван Петров"`
	PhoneNumber    string `json:"phone_number" example:"+79001234567"`
	AcceptedPolicy bool   `json:"accepted_policy"`
	FirstOrderPaid bool   `json:"first_order_paid"`
}
