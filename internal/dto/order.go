package dto

type LineItemDTO struct {
	Filename    string `json:"filename" example:"IMG_0001.jpg"`
	StoragePath string `json:"storage_path" example:"uploads/123456789/IMG_0001.jpg"`
	Format      string `json:"format" example:"10x15"`
	Copies      int    `json:"copies" example:"2"`
}

type CreateOrderRequestDTO struct {
	Items           []LineItemDTO `json:"items"`
	Comment         string        `json:"comment,omitempty"`
	PromoCode       string        `json:"promo_code,omitempty" example:"TEST10"`
	DeliveryPointID *int          `json:"delivery_point_id,omitempty" example:"1"`
	ReceiverName    string        `json:"receiver_name,omitempty"`
	ReceiverPhone   string        `json:"receiver_phone,omitempty"`
}

type CreateOrderResponseDTO struct {
	OrderID  string `json:"order_id" example:"3f1c2b9e-6a0d-4c3e-9d4f-1b2a3c4d5e6f"`
	Price    string `json:"price" example:"1140.00"`
	Discount string `json:"discount" example:"60.00"`
}

type OrderResponseDTO struct {
	OrderID         string        `json:"order_id"`
	ShortID         string        `json:"short_id" example:"3f1c2b9e"`
	Status          string        `json:"status" example:"new"`
	StatusLabel     string        `json:"status_label" example:"🔄 Новый"`
	Items           []LineItemDTO `json:"items"`
	Copies          int           `json:"copies" example:"60"`
	DeliveryPointID *int          `json:"delivery_point_id,omitempty"`
	ReceiverName    string        `json:"receiver_name"`
	ReceiverPhone   string        `json:"receiver_phone"`
	Comment         string        `json:"comment,omitempty"`
	Price           string        `json:"price" example:"1140.00"`
	Discount        string        `json:"discount" example:"60.00"`
	PromoCode       *string       `json:"promo_code,omitempty"`
	Paid            bool          `json:"paid"`
	Editable        bool          `json:"editable"`
	Cancellable     bool          `json:"cancellable"`
	Closed          bool          `json:"closed"`
	CreatedAt       string        `json:"created_at" example:"2024-05-01T12:00:00Z"`
	UpdatedAt       string        `json:"updated_at" example:"2024-05-01T12:00:00Z"`
}

type UpdateItemsRequestDTO struct {
	Format *string `json:"format,omitempty" example:"13x18"`
	Copies *int    `json:"copies,omitempty" example:"3"`
}

type UpdateReceiverRequestDTO struct {
	Name  string `json:"name" example:"Иван Петров"`
	Phone string `json:"phone" example:"+79001234567"`
}

type UpdateCommentRequestDTO struct {
	Comment string `json:"comment"`
}

type SetDeliveryPointRequestDTO struct {
	DeliveryPointID int `json:"delivery_point_id" example:"1"`
}
