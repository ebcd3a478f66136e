package service

import (
	"strings"

	apperrors "github.com/easyshop/easyshop-backend/internal/errors"
	"github.com/easyshop/easyshop-backend/internal/models"
)

// ValidateInitiatePaymentRequest validates a mobile-money payment request.
// Phone numbers must be full Ethiopian MSISDNs: 12 digits starting with 251.
func ValidateInitiatePaymentRequest(req *models.InitiatePaymentRequest) error {
	if req.Amount <= 0 {
		return apperrors.NewValidationError("amount", "amount must be positive")
	}

	if req.CustomerName == "" {
		return apperrors.NewValidationError("customerName", "customer name is required")
	}

	if err := ValidatePhoneNumber(req.PhoneNumber); err != nil {
		return err
	}

	return nil
}

// ValidatePhoneNumber checks an Ethiopian mobile number in international
// format without the plus sign, e.g. 251912345678.
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return apperrors.NewValidationError("phoneNumber", "phone number is required")
	}

	if len(phone) != 12 {
		return apperrors.NewValidationError("phoneNumber", "phone number must be 12 digits (e.g. 251912345678)")
	}

	if !strings.HasPrefix(phone, "251") {
		return apperrors.NewValidationError("phoneNumber", "phone number must start with country code 251")
	}

	for _, r := range phone {
		if r < '0' || r > '9' {
			return apperrors.NewValidationError("phoneNumber", "phone number must contain only digits")
		}
	}

	return nil
}

// ValidateVerifyPaymentRequest requires at least one payment identifier.
func ValidateVerifyPaymentRequest(req *models.VerifyPaymentRequest) error {
	if req.TransactionID == "" && req.OrderID == "" {
		return apperrors.NewValidationError("transactionId", "transaction ID or order ID is required")
	}
	return nil
}

// ValidateCreateOrderRequest validates an order creation request.
func ValidateCreateOrderRequest(req *models.CreateOrderRequest) error {
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id", "user ID is required")
	}

	if len(req.Items) == 0 {
		return apperrors.NewValidationError("items", "at least one item is required")
	}

	for i := range req.Items {
		if err := validateOrderItem(&req.Items[i]); err != nil {
			return err
		}
	}

	return validateAddress(&req.ShippingAddress, "shipping_address")
}

func validateOrderItem(item *models.OrderItem) error {
	if item.ProductID == "" {
		return apperrors.NewValidationError("items", "product ID is required for item")
	}

	if item.Quantity <= 0 {
		return apperrors.NewValidationError("items", "quantity must be positive")
	}

	if item.UnitPrice.Amount < 0 {
		return apperrors.NewValidationError("items", "unit price cannot be negative")
	}

	if item.UnitPrice.Currency == "" {
		return apperrors.NewValidationError("items", "currency is required for item")
	}

	return nil
}

func validateAddress(addr *models.Address, field string) error {
	if addr.Line1 == "" {
		return apperrors.NewValidationError(field, "address line 1 is required")
	}

	if addr.City == "" {
		return apperrors.NewValidationError(field, "city is required")
	}

	if addr.Country == "" {
		return apperrors.NewValidationError(field, "country is required")
	}

	if len(addr.Country) != 2 {
		return apperrors.NewValidationError(field, "country must be a 2-letter ISO code")
	}

	return nil
}

// ValidateUpdateOrderStatusRequest validates a status update request.
func ValidateUpdateOrderStatusRequest(req *models.UpdateOrderStatusRequest) error {
	if req.Status == "" {
		return apperrors.NewValidationError("status", "status is required")
	}

	switch req.Status {
	case models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded:
		// Valid status
	default:
		return apperrors.NewValidationError("status", "invalid order status")
	}

	return nil
}

// ValidateRegisterRequest validates a user registration request.
func ValidateRegisterRequest(req *models.RegisterRequest) error {
	if req.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apperrors.NewValidationError("email", "a valid email is required")
	}

	if len(req.Password) < 8 {
		return apperrors.NewValidationError("password", "password must be at least 8 characters")
	}

	if req.Phone != "" {
		if err := ValidatePhoneNumber(req.Phone); err != nil {
			return err
		}
	}

	return nil
}

// ValidateCreateProductRequest validates product create/update payloads.
func ValidateCreateProductRequest(req *models.CreateProductRequest) error {
	if req.Name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}

	if req.Price < 0 {
		return apperrors.NewValidationError("price", "price cannot be negative")
	}

	if req.CategoryID == "" {
		return apperrors.NewValidationError("category_id", "category ID is required")
	}

	if req.CountInStock < 0 {
		return apperrors.NewValidationError("count_in_stock", "stock count cannot be negative")
	}

	return nil
}

// SanitizeNotes sanitizes free-text notes to prevent XSS.
func SanitizeNotes(notes string) string {
	// TODO(TEAM-SEC): Use proper HTML sanitization library
	notes = strings.ReplaceAll(notes, "<", "&lt;")
	notes = strings.ReplaceAll(notes, ">", "&gt;")
	notes = strings.ReplaceAll(notes, "\"", "&quot;")
	notes = strings.TrimSpace(notes)

	if len(notes) > 1000 {
		notes = notes[:1000]
	}

	return notes
}
